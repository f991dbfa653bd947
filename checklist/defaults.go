package checklist

type seed struct {
	title    string
	category string
	weeks    int
}

var packingSeeds = []seed{
	{"Henkilöllisyystodistus", "Pakollinen", 0},
	{"Palveluksen aloittamismääräys", "Pakollinen", 0},
	{"Tilinumero (IBAN-muodossa)", "Pakollinen", 0},
	{"Kela-kortti (sairausvakuutuskortti)", "Pakollinen", 0},
	{"Puhelin", "Pakollinen", 0},

	{"Omat lääkkeet (~2 viikon tarve)", "Lääkkeet", 0},
	{"Reseptit", "Lääkkeet", 0},
	{"Rokotuskortti", "Lääkkeet", 0},
	{"Kipulääke (burana, panadol)", "Lääkkeet", 0},
	{"Laastarit", "Lääkkeet", 0},
	{"Rakkolaastarit", "Lääkkeet", 0},

	{"Hammasharja + tahna", "Hygienia", 0},
	{"Saippua / suihkugeeli", "Hygienia", 0},
	{"Shampoo", "Hygienia", 0},
	{"Deodorantti", "Hygienia", 0},
	{"Partakone / -höylä", "Hygienia", 0},
	{"Pyyhkeet (1-2 kpl)", "Hygienia", 0},
	{"Kynsileikkuri / -sakset", "Hygienia", 0},
	{"Kosteuspyyhkeet", "Hygienia", 0},

	{"Omat alusvaatteet", "Vaatteet", 0},
	{"Sukat (paljon!)", "Vaatteet", 0},
	{"Pitkät aluskerrastot (talvi)", "Vaatteet", 0},
	{"Omat pohjalliset", "Vaatteet", 0},
	{"Vapaa-ajan vaatteet", "Vaatteet", 0},
	{"Salivaatteet", "Vaatteet", 0},

	{"Rannekello (taustavalo!)", "Hyödylliset", 0},
	{"Käteistä rahaa", "Hyödylliset", 0},
	{"Otsalamppu / taskulamppu", "Hyödylliset", 0},
	{"Puukko / monitoimityökalu", "Hyödylliset", 0},
	{"Matka-akku (powerbank)", "Hyödylliset", 0},
	{"Kuulokkeet", "Hyödylliset", 0},
	{"Urheiluteippi", "Hyödylliset", 0},
	{"Laturi (USB-A ja -C)", "Hyödylliset", 0},
	{"Lukuvalo", "Hyödylliset", 0},

	{"Juomapullo", "Ajanviete", 0},
	{"Kirja / lehti", "Ajanviete", 0},
	{"Muistiinpanovälineet (vihko, kynä)", "Ajanviete", 0},
	{"Naposteltavaa (ei turhaa)", "Ajanviete", 0},
}

var preparationSeeds = []seed{
	{"Aseta palveluspäivät", "Heti", 12},
	{"Lue varuskuntasi alokasopas", "Heti", 12},
	{"Ilmoita työnantajalle / koululle", "Heti", 12},

	{"Tee Cooper-testi (lähtötaso)", "Fyysinen valmistautuminen", 12},
	{"Aloita säännöllinen juoksuharjoittelu", "Fyysinen valmistautuminen", 10},
	{"Lihaskuntoharjoittelu", "Fyysinen valmistautuminen", 10},
	{"Käy hammaslääkärissä", "Fyysinen valmistautuminen", 8},
	{"Tee toinen Cooper-testi", "Fyysinen valmistautuminen", 6},
	{"Käy lääkärissä tarvittaessa", "Fyysinen valmistautuminen", 6},

	{"Ilmoita osoitteenmuutos", "Hallinnolliset asiat", 6},
	{"Tarkista henkilöllisyystodistus", "Hallinnolliset asiat", 6},
	{"Hanki Kela-kortti jos ei ole", "Hallinnolliset asiat", 6},
	{"Järjestä postin ohjaus", "Hallinnolliset asiat", 4},
	{"Tulosta aloittamismääräys", "Hallinnolliset asiat", 2},

	{"Peru / aseta tauolle kuntosali", "Taloudelliset", 4},
	{"Vaihda puhelinliittymä", "Taloudelliset", 4},
	{"Säästä rahaa varusteisiin", "Taloudelliset", 4},
	{"Selvitä laskujen maksu", "Taloudelliset", 3},
	{"Tarkista tilinumero", "Taloudelliset", 2},

	{"Tarkista pakkauslista", "Viimeinen viikko", 1},
	{"Pakkaa tavarat", "Viimeinen viikko", 1},
	{"Tarkista matkareitit", "Viimeinen viikko", 1},
	{"Varaa junalippu", "Viimeinen viikko", 1},
	{"Varmista aloittamismääräys mukana", "Viimeinen viikko", 0},
	{"Lataa puhelin", "Viimeinen viikko", 0},
}

var equipmentSeeds = []seed{
	{"RK 62 / RK 95", "Aseet", 0},
	{"Pistooli", "Aseet", 0},

	{"Kypärä", "Suojavarusteet", 0},
	{"Suojalasit", "Suojavarusteet", 0},
	{"Kaasunaamari", "Suojavarusteet", 0},
	{"Taisteluvyö", "Suojavarusteet", 0},

	{"Reppu (selkäreppu)", "Kantamukset", 0},
	{"Taistelutasku", "Kantamukset", 0},
	{"Patruunapussit", "Kantamukset", 0},

	{"Kenttäpuku M05", "Vaatteet", 0},
	{"Saappaat", "Vaatteet", 0},
	{"Talvitakki", "Vaatteet", 0},
	{"Makuupussi", "Vaatteet", 0},
}

// DefaultItems returns the seed list for kind with fresh IDs. Preparation
// seeds with a zero week count have no due date.
func DefaultItems(kind Kind, newID func() string) []Item {
	seeds := packingSeeds
	if kind == KindPreparation {
		seeds = preparationSeeds
	}

	items := make([]Item, 0, len(seeds))
	for _, s := range seeds {
		it := Item{ID: newID(), Kind: kind, Title: s.title, Category: s.category}
		if s.weeks > 0 {
			w := s.weeks
			it.DueWeeksBefore = &w
		}
		items = append(items, it)
	}
	return items
}

// DefaultEquipment returns the standard issue list, nothing issued yet.
func DefaultEquipment(newID func() string) []Equipment {
	items := make([]Equipment, 0, len(equipmentSeeds))
	for _, s := range equipmentSeeds {
		items = append(items, Equipment{ID: newID(), Name: s.title, Category: s.category})
	}
	return items
}

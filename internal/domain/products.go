package domain

// Catalog collections used by the storefront's browsing sections.
const (
	CollectionLancamentos = "lancamentos"
	CollectionSemijoias   = "semijoias"
	CollectionPratas      = "pratas"
)

// Products is the static catalog. Prices are in centavos.
var Products = []Product{
	{
		Slug:        "brinco-aurora",
		Name:        "Brinco Aurora",
		Description: "Banho premium • acabamento espelhado",
		Details:     "Brinco com acabamento espelhado e brilho intenso, ideal pra elevar qualquer look. Peça leve, confortável e com visual sofisticado. Cuidados: evite contato com água, perfume e produtos químicos; guarde em local seco.",
		Price:       8990,
		Image:       "/peca1.jpg",
		Images:      []string{"/peca1.jpg", "/peca1-2.jpg"},
		Tag:         "Novidade",
		Collection:  CollectionLancamentos,
	},
	{
		Slug:        "colar-lumi",
		Name:        "Colar Lumi",
		Description: "Minimalista • brilho sutil",
		Details:     "Colar minimalista com brilho discreto, perfeito pra uso diário e pra compor camadas. Cuidados: limpe com flanela macia e evite guardar com peças que possam riscar.",
		Price:       12990,
		Image:       "/peca2.jpg",
		Images:      []string{"/peca2.jpg"},
		Collection:  CollectionLancamentos,
	},
	{
		Slug:        "anel-eveil",
		Name:        "Anel Éveil",
		Description: "Ajustável • destaque do look",
		Details:     "Anel ajustável com presença e acabamento refinado. Cuidados: evite pressão excessiva ao ajustar e não use em piscina/mar.",
		Price:       7990,
		Image:       "/peca3.jpg",
		Images:      []string{"/peca3.jpg"},
		Tag:         "Destaque",
		Collection:  CollectionLancamentos,
	},
	{
		Slug:        "pulseira-nouveau",
		Name:        "Pulseira Nouveau",
		Description: "Clássica • fácil de combinar",
		Details:     "Pulseira clássica e versátil pra combinar com relógio e outras peças. Cuidados: retire antes do banho e ao usar cremes/óleos; guarde na embalagem.",
		Price:       9990,
		Image:       "/peca4.jpg",
		Images:      []string{"/peca4.jpg"},
		Collection:  CollectionLancamentos,
	},
	{
		Slug:        "colar-dourado",
		Name:        "Colar Dourado",
		Description: "Banho de ouro • brilho elegante",
		Details:     "Colar com banho dourado e visual elegante, perfeito para compor camadas ou usar sozinho. Cuidados: evite água, perfume e produtos químicos; limpe com flanela macia e guarde na embalagem.",
		Price:       14990,
		Image:       "/ouro1.png",
		Images:      []string{"/ouro1.png"},
		Tag:         "Novo",
		Collection:  CollectionSemijoias,
	},
	{
		Slug:        "brinco-gota",
		Name:        "Brinco Gota",
		Description: "Leve • perfeito pro dia a dia",
		Details:     "Brinco leve e confortável, com brilho na medida certa. Ideal para uso diário. Cuidados: retire antes do banho e evite contato com cremes/perfumes.",
		Price:       7990,
		Image:       "/ouro2.png",
		Images:      []string{"/ouro2.png"},
		Collection:  CollectionSemijoias,
	},
	{
		Slug:        "anel-ajustavel",
		Name:        "Anel Ajustável",
		Description: "Acabamento premium • confortável",
		Details:     "Anel ajustável com acabamento premium e caimento confortável. Cuidados: ajuste com delicadeza, evite pressão excessiva e não use em piscina/mar.",
		Price:       8990,
		Image:       "/ouro3.png",
		Images:      []string{"/ouro3.png"},
		Tag:         "Destaque",
		Collection:  CollectionSemijoias,
	},
	{
		Slug:        "pulseira-delicada",
		Name:        "Pulseira Delicada",
		Description: "Minimalista • combina com tudo",
		Details:     "Pulseira minimalista e versátil para combinar com outras peças. Cuidados: retire ao usar cremes/óleos e guarde separada para evitar atrito.",
		Price:       9990,
		Image:       "/ouro4.png",
		Images:      []string{"/ouro4.png"},
		Collection:  CollectionSemijoias,
	},
	{
		Slug:        "brinco-prata-925",
		Name:        "Brinco Prata 925",
		Description: "Prata 925 • brilho delicado",
		Details:     "Brinco em Prata 925 com brilho delicado e acabamento polido. Cuidados: guarde em local seco e limpe com flanela própria para prata.",
		Price:       7990,
		Image:       "/prata1.png",
		Images:      []string{"/prata1.png"},
		Tag:         "925",
		Collection:  CollectionPratas,
	},
	{
		Slug:        "colar-prata-925",
		Name:        "Colar Prata 925",
		Description: "Minimalista • perfeito pro dia a dia",
		Details:     "Colar em Prata 925, minimalista e fácil de combinar. Ideal para uso diário e para mix de colares. Cuidados: evite contato com produtos químicos e guarde separado.",
		Price:       13990,
		Image:       "/prata2.png",
		Images:      []string{"/prata2.png"},
		Collection:  CollectionPratas,
	},
	{
		Slug:        "anel-prata-925",
		Name:        "Anel Prata 925",
		Description: "Ajustável • acabamento polido",
		Details:     "Anel em Prata 925 com acabamento polido e ajuste confortável. Cuidados: ajuste com cuidado e limpe com flanela macia para manter o brilho.",
		Price:       8990,
		Image:       "/prata3.png",
		Images:      []string{"/prata3.png"},
		Tag:         "Destaque",
		Collection:  CollectionPratas,
	},
	{
		Slug:        "pulseira-prata-925",
		Name:        "Pulseira Prata 925",
		Description: "Clássica • combina com tudo",
		Details:     "Pulseira clássica em Prata 925, perfeita para usar sozinha ou com relógio. Cuidados: evite água do mar/piscina e guarde na embalagem para reduzir oxidação.",
		Price:       9990,
		Image:       "/prata4.png",
		Images:      []string{"/prata4.png"},
		Collection:  CollectionPratas,
	},
}

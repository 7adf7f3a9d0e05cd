package entity

// OSC organización de la sociedad civil registrada en el backend.
type OSC struct {
	ID               int64
	CNPJ             string
	Name             string
	PartnershipCount int
}

// Store loja minorista. StoreCode es el código visible para el operador, distinto del ID interno.
type Store struct {
	ID               int64
	StoreCode        int64
	Name             string
	PartnershipCount int
	Flag             string
}

// Campaign campanha de marketing.
type Campaign struct {
	ID   int64
	Name string
}

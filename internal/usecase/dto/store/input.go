package storedto

type ContactInput struct {
	ISD    string `json:"ISD"`
	Number string `json:"number"`
}

type LocationInput struct {
	Coordinates [2]string `json:"coordinates"`
}

type AddressInput struct {
	Line1    string        `json:"line1"`
	Location LocationInput `json:"location"`
}

type StoreInfoInput struct {
	Name          string       `json:"name"`
	UPI           string       `json:"upi"`
	LicenseNumber string       `json:"licenseNumber"`
	Contact       ContactInput `json:"contact"`
	Address       AddressInput `json:"address"`
}

// EditStoreInput drives both modes of the single edit entry point:
// Edit=false registers a new store, Edit=true updates the caller's own.
type EditStoreInput struct {
	Token     string
	Edit      bool
	StoreInfo StoreInfoInput
}

type VerifyStoreInput struct {
	Token    string
	StoreID  string
	Verified bool
}

type AddAccountInput struct {
	Token   string
	Contact ContactInput
	OrderID string
}

package claims

import "time"

// Customer describes a customer record returned by the backend.
type Customer struct {
	ID           string `json:"_id"`
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	MobileNumber string `json:"mobileNumber"`
}

// Claim mirrors a claim record as returned by the claims API.
type Claim struct {
	ID                   string   `json:"_id"`
	UserID               string   `json:"userId"`
	Customer             Customer `json:"customerId"`
	BillNumber           string   `json:"billNumber"`
	BillDate             string   `json:"billDate"`
	DocketNumber         string   `json:"docketNumber"`
	LeadRelation         string   `json:"leadRelation"`
	ComplaintDetails     string   `json:"complaintDetails"`
	AdditionalRemarks    string   `json:"additionalRemarks"`
	ClaimStatusByCompany string   `json:"claimStatusByCompany"`
	LastTab              int      `json:"lastTab"`
	TyreCompany          string   `json:"tyreCompany"`
	TyrePattern          string   `json:"tyrePattern"`
	TyreSize             string   `json:"tyreSize"`
	TyreSerialNumber     string   `json:"tyreSerialNumber"`
	TyreSentThrough      string   `json:"tyreSentThrough"`
	TyreSentDate         string   `json:"tyreSentDate"`
	WarrantyDetails      string   `json:"warrentyDetails"`
	DepreciationAmt      string   `json:"depreciationAmt"`
	ReturnToCustomerDt   string   `json:"returnToCustomerDt"`
	FinalClaimStatus     bool     `json:"finalClaimStatus"`
	VehicleNumber        string   `json:"vehicleNumber"`
	VehicleType          string   `json:"vehicleType"`
	DistanceCovered      string   `json:"distanceCovered"`
	TyreImg              []string `json:"tyreImg"`
}

// FormatBillDate renders a claim's bill date for display, falling back to
// the raw string when it is not a parseable timestamp.
func (c Claim) FormatBillDate() string {
	return formatDate(c.BillDate)
}

func formatDate(value string) string {
	if value == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("02 Jan 2006")
		}
	}
	return value
}

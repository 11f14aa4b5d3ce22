package claims

import (
	"fmt"
	"strings"
)

// Section identifies one of the four intake form sections.
type Section int

const (
	SectionCustomer Section = iota
	SectionTyre
	SectionVehicle
	SectionIssuance
)

// Sections lists the sections in flow order.
var Sections = []Section{SectionCustomer, SectionTyre, SectionVehicle, SectionIssuance}

// Index returns the 1-based wire index used by the per-section save endpoint.
func (s Section) Index() int {
	return int(s) + 1
}

// Key returns the section's field name within the aggregate.
func (s Section) Key() string {
	switch s {
	case SectionCustomer:
		return "customerDetails"
	case SectionTyre:
		return "tyreDetails"
	case SectionVehicle:
		return "vehicleDetails"
	case SectionIssuance:
		return "issuance"
	}
	return "unknown"
}

// Title returns the section's display heading.
func (s Section) Title() string {
	switch s {
	case SectionCustomer:
		return "Customer Details"
	case SectionTyre:
		return "Tyre Details"
	case SectionVehicle:
		return "Vehicle Details"
	case SectionIssuance:
		return "Issuance"
	}
	return "Unknown"
}

// CustomerDetails is the first intake section.
type CustomerDetails struct {
	CustomerName      string `json:"customerName" validate:"required"`
	CustomerNumber    string `json:"customerNumber" validate:"required"`
	BillDate          string `json:"billDate" validate:"required"`
	BillNumber        string `json:"billNumber" validate:"required"`
	DocketNumber      string `json:"docketNumber"`
	LeadRelation      string `json:"leadRelation"`
	ComplaintDetails  string `json:"complaintDetails"`
	AdditionalRemarks string `json:"additionalRemarks"`
}

// TyreDetails is the second intake section. TyreSentDate is nullable on the
// wire, so it is a pointer here. The warrenty spelling matches the backend.
type TyreDetails struct {
	WarrantyDetails  string   `json:"warrentyDetails"`
	TyreSerialNumber string   `json:"tyreSerialNumber" validate:"required"`
	TyrePattern      string   `json:"tyrePattern"`
	TyreSize         string   `json:"tyreSize"`
	TyreSentDate     *string  `json:"tyreSentDate"`
	TyreSentThrough  string   `json:"tyreSentThrough"`
	TyreCompany      string   `json:"tyreCompany" validate:"required"`
	TyreImg          []string `json:"tyreImg"`
}

// VehicleDetails is the third intake section.
type VehicleDetails struct {
	VehicleNumber   string `json:"vehicleNumber" validate:"required"`
	Type            string `json:"type"`
	DistanceCovered string `json:"distanceCovered"`
}

// Issuance is the final intake section. ReturnToCustomerDt is nullable on
// the wire.
type Issuance struct {
	DepreciationAmt      string  `json:"depreciationAmt"`
	ClaimStatusByCompany string  `json:"claimStatusByCompany"`
	ReturnToCustomerDt   *string `json:"returnToCustomerDt"`
	FinalClaimStatus     bool    `json:"finalClaimStatus"`
}

// FormAggregate is the combined in-memory state of the multi-step intake
// form. Every field carries a stable default so the aggregate is always
// fully populated.
type FormAggregate struct {
	CustomerDetails CustomerDetails `json:"customerDetails"`
	TyreDetails     TyreDetails     `json:"tyreDetails"`
	VehicleDetails  VehicleDetails  `json:"vehicleDetails"`
	Issuance        Issuance        `json:"issuance"`
}

// DefaultAggregate returns the documented default aggregate: empty strings,
// nil dates, pending company status, no images.
func DefaultAggregate() FormAggregate {
	return FormAggregate{
		TyreDetails: TyreDetails{TyreImg: []string{}},
		Issuance:    Issuance{ClaimStatusByCompany: "pending"},
	}
}

// AggregateFromClaim seeds a form aggregate from a fetched claim record,
// used when an existing claim is opened for editing. Empty wire dates map
// to nil, and absent fields fall back to their defaults.
func AggregateFromClaim(c Claim) FormAggregate {
	agg := FormAggregate{
		CustomerDetails: CustomerDetails{
			CustomerName:      c.Customer.Name,
			CustomerNumber:    c.Customer.MobileNumber,
			BillDate:          c.BillDate,
			BillNumber:        c.BillNumber,
			DocketNumber:      c.DocketNumber,
			LeadRelation:      c.LeadRelation,
			ComplaintDetails:  c.ComplaintDetails,
			AdditionalRemarks: c.AdditionalRemarks,
		},
		TyreDetails: TyreDetails{
			WarrantyDetails:  c.WarrantyDetails,
			TyreSerialNumber: c.TyreSerialNumber,
			TyrePattern:      c.TyrePattern,
			TyreSize:         c.TyreSize,
			TyreSentThrough:  c.TyreSentThrough,
			TyreCompany:      c.TyreCompany,
			TyreImg:          c.TyreImg,
		},
		VehicleDetails: VehicleDetails{
			VehicleNumber:   c.VehicleNumber,
			Type:            c.VehicleType,
			DistanceCovered: c.DistanceCovered,
		},
		Issuance: Issuance{
			DepreciationAmt:      c.DepreciationAmt,
			ClaimStatusByCompany: c.ClaimStatusByCompany,
			FinalClaimStatus:     c.FinalClaimStatus,
		},
	}
	if c.TyreSentDate != "" {
		d := c.TyreSentDate
		agg.TyreDetails.TyreSentDate = &d
	}
	if c.ReturnToCustomerDt != "" {
		d := c.ReturnToCustomerDt
		agg.Issuance.ReturnToCustomerDt = &d
	}
	if agg.TyreDetails.TyreImg == nil {
		agg.TyreDetails.TyreImg = []string{}
	}
	if agg.Issuance.ClaimStatusByCompany == "" {
		agg.Issuance.ClaimStatusByCompany = "pending"
	}
	return agg
}

// SectionPayload returns the named section's data for submission.
func (a FormAggregate) SectionPayload(s Section) any {
	switch s {
	case SectionCustomer:
		return a.CustomerDetails
	case SectionTyre:
		return a.TyreDetails
	case SectionVehicle:
		return a.VehicleDetails
	case SectionIssuance:
		return a.Issuance
	}
	return nil
}

// Field identifies one leaf value of the aggregate. Using typed constants
// instead of free-form dotted strings means a mistyped field cannot turn
// into a silent no-op.
type Field int

const (
	FieldCustomerName Field = iota
	FieldCustomerNumber
	FieldBillDate
	FieldBillNumber
	FieldDocketNumber
	FieldLeadRelation
	FieldComplaintDetails
	FieldAdditionalRemarks

	FieldWarrantyDetails
	FieldTyreSerialNumber
	FieldTyrePattern
	FieldTyreSize
	FieldTyreSentDate
	FieldTyreSentThrough
	FieldTyreCompany

	FieldVehicleNumber
	FieldVehicleType
	FieldDistanceCovered

	FieldDepreciationAmt
	FieldClaimStatusByCompany
	FieldReturnToCustomerDt
	FieldFinalClaimStatus
)

var fieldNames = map[Field]string{
	FieldCustomerName:         "customerDetails.customerName",
	FieldCustomerNumber:       "customerDetails.customerNumber",
	FieldBillDate:             "customerDetails.billDate",
	FieldBillNumber:           "customerDetails.billNumber",
	FieldDocketNumber:         "customerDetails.docketNumber",
	FieldLeadRelation:         "customerDetails.leadRelation",
	FieldComplaintDetails:     "customerDetails.complaintDetails",
	FieldAdditionalRemarks:    "customerDetails.additionalRemarks",
	FieldWarrantyDetails:      "tyreDetails.warrentyDetails",
	FieldTyreSerialNumber:     "tyreDetails.tyreSerialNumber",
	FieldTyrePattern:          "tyreDetails.tyrePattern",
	FieldTyreSize:             "tyreDetails.tyreSize",
	FieldTyreSentDate:         "tyreDetails.tyreSentDate",
	FieldTyreSentThrough:      "tyreDetails.tyreSentThrough",
	FieldTyreCompany:          "tyreDetails.tyreCompany",
	FieldVehicleNumber:        "vehicleDetails.vehicleNumber",
	FieldVehicleType:          "vehicleDetails.type",
	FieldDistanceCovered:      "vehicleDetails.distanceCovered",
	FieldDepreciationAmt:      "issuance.depreciationAmt",
	FieldClaimStatusByCompany: "issuance.claimStatusByCompany",
	FieldReturnToCustomerDt:   "issuance.returnToCustomerDt",
	FieldFinalClaimStatus:     "issuance.finalClaimStatus",
}

// String returns the dotted section.field path for the field.
func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Section returns the section the field belongs to.
func (f Field) Section() Section {
	switch {
	case f <= FieldAdditionalRemarks:
		return SectionCustomer
	case f <= FieldTyreCompany:
		return SectionTyre
	case f <= FieldDistanceCovered:
		return SectionVehicle
	default:
		return SectionIssuance
	}
}

// ParseField resolves a dotted section.field path to its typed Field.
// Unknown paths are an error, not a silent no-op.
func ParseField(path string) (Field, error) {
	trimmed := strings.TrimSpace(path)
	for f, name := range fieldNames {
		if name == trimmed {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown form field %q", path)
}

// Set writes value to the addressed leaf, leaving every sibling untouched.
// The value's type must match the field: string for text fields, *string or
// nil for nullable dates, bool for flags.
func (a *FormAggregate) Set(f Field, value any) error {
	switch f {
	case FieldCustomerName:
		return setString(&a.CustomerDetails.CustomerName, f, value)
	case FieldCustomerNumber:
		return setString(&a.CustomerDetails.CustomerNumber, f, value)
	case FieldBillDate:
		return setString(&a.CustomerDetails.BillDate, f, value)
	case FieldBillNumber:
		return setString(&a.CustomerDetails.BillNumber, f, value)
	case FieldDocketNumber:
		return setString(&a.CustomerDetails.DocketNumber, f, value)
	case FieldLeadRelation:
		return setString(&a.CustomerDetails.LeadRelation, f, value)
	case FieldComplaintDetails:
		return setString(&a.CustomerDetails.ComplaintDetails, f, value)
	case FieldAdditionalRemarks:
		return setString(&a.CustomerDetails.AdditionalRemarks, f, value)
	case FieldWarrantyDetails:
		return setString(&a.TyreDetails.WarrantyDetails, f, value)
	case FieldTyreSerialNumber:
		return setString(&a.TyreDetails.TyreSerialNumber, f, value)
	case FieldTyrePattern:
		return setString(&a.TyreDetails.TyrePattern, f, value)
	case FieldTyreSize:
		return setString(&a.TyreDetails.TyreSize, f, value)
	case FieldTyreSentDate:
		return setNullableString(&a.TyreDetails.TyreSentDate, f, value)
	case FieldTyreSentThrough:
		return setString(&a.TyreDetails.TyreSentThrough, f, value)
	case FieldTyreCompany:
		return setString(&a.TyreDetails.TyreCompany, f, value)
	case FieldVehicleNumber:
		return setString(&a.VehicleDetails.VehicleNumber, f, value)
	case FieldVehicleType:
		return setString(&a.VehicleDetails.Type, f, value)
	case FieldDistanceCovered:
		return setString(&a.VehicleDetails.DistanceCovered, f, value)
	case FieldDepreciationAmt:
		return setString(&a.Issuance.DepreciationAmt, f, value)
	case FieldClaimStatusByCompany:
		return setString(&a.Issuance.ClaimStatusByCompany, f, value)
	case FieldReturnToCustomerDt:
		return setNullableString(&a.Issuance.ReturnToCustomerDt, f, value)
	case FieldFinalClaimStatus:
		return setBool(&a.Issuance.FinalClaimStatus, f, value)
	}
	return fmt.Errorf("unknown form field %d", int(f))
}

// Get reads the addressed leaf value. Nullable dates come back as *string,
// possibly nil.
func (a FormAggregate) Get(f Field) any {
	switch f {
	case FieldCustomerName:
		return a.CustomerDetails.CustomerName
	case FieldCustomerNumber:
		return a.CustomerDetails.CustomerNumber
	case FieldBillDate:
		return a.CustomerDetails.BillDate
	case FieldBillNumber:
		return a.CustomerDetails.BillNumber
	case FieldDocketNumber:
		return a.CustomerDetails.DocketNumber
	case FieldLeadRelation:
		return a.CustomerDetails.LeadRelation
	case FieldComplaintDetails:
		return a.CustomerDetails.ComplaintDetails
	case FieldAdditionalRemarks:
		return a.CustomerDetails.AdditionalRemarks
	case FieldWarrantyDetails:
		return a.TyreDetails.WarrantyDetails
	case FieldTyreSerialNumber:
		return a.TyreDetails.TyreSerialNumber
	case FieldTyrePattern:
		return a.TyreDetails.TyrePattern
	case FieldTyreSize:
		return a.TyreDetails.TyreSize
	case FieldTyreSentDate:
		return a.TyreDetails.TyreSentDate
	case FieldTyreSentThrough:
		return a.TyreDetails.TyreSentThrough
	case FieldTyreCompany:
		return a.TyreDetails.TyreCompany
	case FieldVehicleNumber:
		return a.VehicleDetails.VehicleNumber
	case FieldVehicleType:
		return a.VehicleDetails.Type
	case FieldDistanceCovered:
		return a.VehicleDetails.DistanceCovered
	case FieldDepreciationAmt:
		return a.Issuance.DepreciationAmt
	case FieldClaimStatusByCompany:
		return a.Issuance.ClaimStatusByCompany
	case FieldReturnToCustomerDt:
		return a.Issuance.ReturnToCustomerDt
	case FieldFinalClaimStatus:
		return a.Issuance.FinalClaimStatus
	}
	return nil
}

func setString(dst *string, f Field, value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%s expects a string, got %T", f, value)
	}
	*dst = s
	return nil
}

// setNullableString accepts nil, *string, or a plain string. The empty
// string clears the field, matching how date inputs report "no value".
func setNullableString(dst **string, f Field, value any) error {
	switch v := value.(type) {
	case nil:
		*dst = nil
	case *string:
		*dst = v
	case string:
		if v == "" {
			*dst = nil
		} else {
			s := v
			*dst = &s
		}
	default:
		return fmt.Errorf("%s expects a string or nil, got %T", f, value)
	}
	return nil
}

func setBool(dst *bool, f Field, value any) error {
	b, ok := value.(bool)
	if !ok {
		return fmt.Errorf("%s expects a bool, got %T", f, value)
	}
	*dst = b
	return nil
}

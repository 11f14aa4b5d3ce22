package claims

import (
	"reflect"
	"testing"
)

func TestSet_WritesLeafAndNothingElse(t *testing.T) {
	for f, path := range fieldNames {
		t.Run(path, func(t *testing.T) {
			agg := DefaultAggregate()
			before := agg

			var value any
			switch f {
			case FieldFinalClaimStatus:
				value = true
			case FieldTyreSentDate, FieldReturnToCustomerDt:
				value = "2024-06-01"
			default:
				value = "changed"
			}

			if err := agg.Set(f, value); err != nil {
				t.Fatalf("Set(%s) returned error: %v", f, err)
			}

			got := agg.Get(f)
			switch f {
			case FieldTyreSentDate, FieldReturnToCustomerDt:
				p, ok := got.(*string)
				if !ok || p == nil || *p != "2024-06-01" {
					t.Fatalf("Get(%s) = %v, want pointer to %q", f, got, value)
				}
			default:
				if !reflect.DeepEqual(got, value) {
					t.Fatalf("Get(%s) = %v, want %v", f, got, value)
				}
			}

			// Every other leaf must be untouched.
			for other := range fieldNames {
				if other == f {
					continue
				}
				if !reflect.DeepEqual(agg.Get(other), before.Get(other)) {
					t.Fatalf("Set(%s) also changed %s", f, other)
				}
			}
		})
	}
}

func TestSet_RejectsWrongType(t *testing.T) {
	agg := DefaultAggregate()
	if err := agg.Set(FieldCustomerName, 42); err == nil {
		t.Fatalf("Set accepted an int for a string field")
	}
	if err := agg.Set(FieldFinalClaimStatus, "yes"); err == nil {
		t.Fatalf("Set accepted a string for a bool field")
	}
}

func TestSet_EmptyStringClearsNullableDate(t *testing.T) {
	agg := DefaultAggregate()
	if err := agg.Set(FieldTyreSentDate, "2024-06-01"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := agg.Set(FieldTyreSentDate, ""); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if p := agg.TyreDetails.TyreSentDate; p != nil {
		t.Fatalf("TyreSentDate = %q, want nil", *p)
	}
}

func TestDefaultAggregate_Values(t *testing.T) {
	agg := DefaultAggregate()
	if agg.Issuance.ClaimStatusByCompany != "pending" {
		t.Fatalf("ClaimStatusByCompany = %q, want pending", agg.Issuance.ClaimStatusByCompany)
	}
	if agg.TyreDetails.TyreImg == nil || len(agg.TyreDetails.TyreImg) != 0 {
		t.Fatalf("TyreImg = %v, want empty non-nil slice", agg.TyreDetails.TyreImg)
	}
	if agg.TyreDetails.TyreSentDate != nil || agg.Issuance.ReturnToCustomerDt != nil {
		t.Fatalf("nullable dates should default to nil")
	}
	if agg.CustomerDetails.CustomerName != "" || agg.Issuance.FinalClaimStatus {
		t.Fatalf("unexpected non-zero defaults")
	}
}

func TestParseField_KnownAndUnknown(t *testing.T) {
	for f, path := range fieldNames {
		got, err := ParseField(path)
		if err != nil {
			t.Fatalf("ParseField(%q) returned error: %v", path, err)
		}
		if got != f {
			t.Fatalf("ParseField(%q) = %v, want %v", path, got, f)
		}
	}

	if _, err := ParseField("customerDetails.customrName"); err == nil {
		t.Fatalf("ParseField accepted a typo'd path")
	}
	if _, err := ParseField("issuance"); err == nil {
		t.Fatalf("ParseField accepted a bare section")
	}
}

func TestSection_IndexAndMembership(t *testing.T) {
	wantIdx := map[Section]int{
		SectionCustomer: 1,
		SectionTyre:     2,
		SectionVehicle:  3,
		SectionIssuance: 4,
	}
	for s, want := range wantIdx {
		if s.Index() != want {
			t.Fatalf("%s.Index() = %d, want %d", s.Key(), s.Index(), want)
		}
	}

	if FieldCustomerName.Section() != SectionCustomer {
		t.Fatalf("customerName in wrong section")
	}
	if FieldTyreCompany.Section() != SectionTyre {
		t.Fatalf("tyreCompany in wrong section")
	}
	if FieldVehicleNumber.Section() != SectionVehicle {
		t.Fatalf("vehicleNumber in wrong section")
	}
	if FieldFinalClaimStatus.Section() != SectionIssuance {
		t.Fatalf("finalClaimStatus in wrong section")
	}
}

func TestSectionPayload_ReturnsMatchingSlice(t *testing.T) {
	agg := DefaultAggregate()
	agg.VehicleDetails.VehicleNumber = "MH12AB1234"

	payload, ok := agg.SectionPayload(SectionVehicle).(VehicleDetails)
	if !ok {
		t.Fatalf("SectionPayload(vehicle) has type %T", agg.SectionPayload(SectionVehicle))
	}
	if payload.VehicleNumber != "MH12AB1234" {
		t.Fatalf("payload.VehicleNumber = %q", payload.VehicleNumber)
	}
}

func TestAggregateFromClaim(t *testing.T) {
	c := Claim{
		ID:               "claim-7",
		Customer:         Customer{Name: "Asha Traders", MobileNumber: "981100011"},
		BillNumber:       "B-12",
		BillDate:         "2026-01-05",
		ComplaintDetails: "sidewall bulge",
		TyreCompany:      "MRF",
		TyreSerialNumber: "SN-443",
		TyreSentDate:     "2026-01-08",
		VehicleNumber:    "MH12AB1234",
		VehicleType:      "truck",
		DepreciationAmt:  "150",
		FinalClaimStatus: true,
	}

	agg := AggregateFromClaim(c)

	if agg.CustomerDetails.CustomerName != "Asha Traders" || agg.CustomerDetails.CustomerNumber != "981100011" {
		t.Fatalf("customer section = %+v", agg.CustomerDetails)
	}
	if agg.CustomerDetails.BillDate != "2026-01-05" || agg.CustomerDetails.BillNumber != "B-12" {
		t.Fatalf("bill fields = %+v", agg.CustomerDetails)
	}
	if agg.TyreDetails.TyreSentDate == nil || *agg.TyreDetails.TyreSentDate != "2026-01-08" {
		t.Fatalf("TyreSentDate = %v, want 2026-01-08", agg.TyreDetails.TyreSentDate)
	}
	if agg.Issuance.ReturnToCustomerDt != nil {
		t.Fatalf("empty wire date should map to nil, got %v", *agg.Issuance.ReturnToCustomerDt)
	}
	if agg.VehicleDetails.Type != "truck" {
		t.Fatalf("VehicleDetails.Type = %q", agg.VehicleDetails.Type)
	}
	if !agg.Issuance.FinalClaimStatus {
		t.Fatalf("FinalClaimStatus lost")
	}
	if agg.Issuance.ClaimStatusByCompany != "pending" {
		t.Fatalf("empty company status should fall back to pending, got %q", agg.Issuance.ClaimStatusByCompany)
	}
	if agg.TyreDetails.TyreImg == nil {
		t.Fatalf("TyreImg should never be nil")
	}
}

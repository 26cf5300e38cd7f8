// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package validation

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

type saleInput struct {
	CampaignID string `json:"campaign_id" validate:"required"`
	Amount     string `json:"amount" validate:"required,decimal_positive"`
	Customer   string `json:"customer_name" validate:"required,max=10"`
}

type periodInput struct {
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
}

func TestValidAmount(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"100", true},
		{"100.00", true},
		{" 42.5 ", true},
		{"0.01", true},
		{"9999999999.99", true},
		{"10000000000.00", false},
		{"0", false},
		{"-5", false},
		{"1.234", false},
		{"abc", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ValidAmount(tt.in); got != tt.valid {
				t.Errorf("ValidAmount(%q) = %v, expected %v", tt.in, got, tt.valid)
			}
		})
	}
}

func TestStructReportsEveryField(t *testing.T) {
	v := NewValidator()

	err := v.Struct(saleInput{Amount: "abc", Customer: "a very long customer name"})

	vErr, ok := AsError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}

	expected := map[string]string{
		"campaign_id":   "is required",
		"amount":        "must be a positive amount with at most 2 decimals",
		"customer_name": "must be at most 10 characters",
	}

	if len(vErr.Fields) != len(expected) {
		t.Fatalf("expected %d field errors, got %v", len(expected), vErr.Fields)
	}

	for _, f := range vErr.Fields {
		if expected[f.Field] != f.Reason {
			t.Errorf("field %s: expected reason %q, got %q", f.Field, expected[f.Field], f.Reason)
		}
	}
}

func TestStructValid(t *testing.T) {
	v := NewValidator()

	if err := v.Struct(saleInput{CampaignID: "c1", Amount: "10.50", Customer: "X"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestDateOrdering(t *testing.T) {
	v := NewValidator()
	now := time.Now()

	err := v.Struct(periodInput{StartDate: now, EndDate: now.Add(-time.Hour)})
	vErr, ok := AsError(err)
	if !ok || len(vErr.Fields) != 1 || vErr.Fields[0].Field != "end_date" {
		t.Fatalf("expected end_date error, got %v", err)
	}

	if err := v.Struct(periodInput{StartDate: now, EndDate: now}); err != nil {
		t.Fatalf("expected equal dates to be accepted, got %v", err)
	}
}

func TestErrorHelpers(t *testing.T) {
	var empty Error
	if empty.OrNil() != nil {
		t.Fatal("expected nil for empty error")
	}

	wrapped := fmt.Errorf("record sale: %w", NewError("seller_id", "must be a campaign participant"))
	vErr, ok := AsError(wrapped)
	if !ok {
		t.Fatal("expected to find validation error in chain")
	}

	if vErr.Error() != "validation failed: seller_id: must be a campaign participant" {
		t.Fatalf("unexpected message %q", vErr.Error())
	}

	if _, ok := AsError(errors.New("boom")); ok {
		t.Fatal("unexpected validation error")
	}
}

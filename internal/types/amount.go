// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits stored for money, matching NUMERIC(12,2)
const AmountScale = 2

// Amount is a monetary value, serialized as a fixed two decimal string
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d.Round(AmountScale)}
}

// MustAmount parses s and panics on failure, meant for constants and tests
func MustAmount(s string) Amount {
	return NewAmount(decimal.RequireFromString(s))
}

func (a Amount) String() string {
	return a.StringFixed(AmountScale)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	*a = NewAmount(d)

	return nil
}

// DecimalString is the raw textual form of a decimal number as sent by a client, it
// accepts both JSON strings and JSON numbers so validation can report bad input
// per field instead of failing the whole body
type DecimalString string

func (d *DecimalString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = DecimalString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a string or a number")
	}

	*d = DecimalString(n.String())

	return nil
}

// Amount parses the value, validation is expected to have accepted it already
func (d DecimalString) Amount() (Amount, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(string(d)))
	if err != nil {
		return Amount{}, err
	}

	return NewAmount(v), nil
}

// Package phone validates and normalizes mobile numbers.
package phone

import (
	"errors"
	"fmt"

	"github.com/ttacon/libphonenumber"
)

var ErrInvalidNumber = errors.New("invalid phone number")

// Normalize parses raw against each region in order and returns the
// number in +<country><national> form for the first region that
// validates. Regions earlier in the list should be the more common
// ones, since each miss costs a parse.
func Normalize(raw string, regions []string) (string, error) {
	for _, region := range regions {
		num, err := libphonenumber.Parse(raw, region)
		if err != nil {
			continue
		}
		if libphonenumber.IsValidNumberForRegion(num, region) {
			return fmt.Sprintf("+%d%d", num.GetCountryCode(), num.GetNationalNumber()), nil
		}
	}
	return "", ErrInvalidNumber
}

package dto

import (
	"fmt"
	"strconv"
)

// FlexibleID is an ID in a request body. It accepts a JSON string
// ("123") or a JSON number (123) and always encodes as a string.
type FlexibleID int64

func (i *FlexibleID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s", data)
	}
	*i = FlexibleID(v)
	return nil
}

func (i FlexibleID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatInt(int64(i), 10))), nil
}

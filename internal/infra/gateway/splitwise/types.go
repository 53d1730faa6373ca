package splitwise

import (
	"encoding/json"
	"strconv"
)

// currentUserResponse is the GET get_current_user payload
type currentUserResponse struct {
	User struct {
		ID int64 `json:"id"`
	} `json:"user"`
}

// expensesResponse is the GET get_expenses payload
type expensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

// errorResponse is the best-effort shape of a Splitwise error body
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Expense is a raw Splitwise expense. The API is loose about field types:
// amounts arrive as strings or numbers and the category may be a plain
// string, an object, or absent.
type Expense struct {
	ID           FlexString   `json:"id"`
	Description  string       `json:"description"`
	Cost         FlexString   `json:"cost"`
	CurrencyCode string       `json:"currency_code"`
	Date         string       `json:"date"`
	Category     FlexCategory `json:"category"`
	Users        []UserShare  `json:"users"`
}

// UserShare is one participant's entry in an expense
type UserShare struct {
	User struct {
		ID int64 `json:"id"`
	} `json:"user"`
	OwedShare FlexString `json:"owed_share"`
	PaidShare FlexString `json:"paid_share"`
}

// FlexString decodes a JSON string or number into a string
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// FlexCategory decodes a category given as a plain string or as an object
// carrying a name field. Absent or null yields the empty string.
type FlexCategory string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexCategory) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexCategory(s)
		return nil
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*f = FlexCategory(obj.Name)
	return nil
}

// extractErrorMessage pulls the upstream error message out of an error body,
// falling back to a truncated raw body when the shape is unexpected.
func extractErrorMessage(status int, body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error.Message != "" {
		return er.Error.Message
	}

	raw := string(body)
	if len(raw) > 200 {
		raw = raw[:200]
	}
	if raw == "" {
		return "status " + strconv.Itoa(status)
	}
	return raw
}

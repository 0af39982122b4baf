package xts

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Envelope type tags.
const (
	TypeObjectID              = "XTSObjectId"
	TypeCondition             = "XTSCondition"
	TypeSortBy                = "XTSSortBy"
	TypeGetObjectListRequest  = "XTSGetObjectListRequest"
	TypeGetObjectListResponse = "XTSGetObjectListResponse"
	TypeGetObjectsRequest     = "XTSGetObjectsRequest"
	TypeGetObjectsResponse    = "XTSGetObjectsResponse"
	TypeCreateObjectsRequest  = "XTSCreateObjectsRequest"
	TypeCreateObjectsResponse = "XTSCreateObjectsResponse"
	TypeUpdateObjectsRequest  = "XTSUpdateObjectsRequest"
	TypeUpdateObjectsResponse = "XTSUpdateObjectsResponse"
	TypeSignInRequest         = "XTSSignInRequest"
	TypeSignInResponse        = "XTSSignInResponse"
	TypeGetFileRequest        = "XTSGetFileRequest"
	TypeGetFileResponse       = "XTSGetFileResponse"
	TypeErrorResponse         = "XTSErrorResponse"
	SortAscending             = "ASC"
	SortDescending            = "DESC"
	defaultListLimit          = 20
	objectTimeLayout          = "2006-01-02T15:04:05"
	emptyObjectTime           = "0001-01-01T00:00:00"
)

// Request is a request envelope. The client stamps the type tag and
// infobase id before sending.
type Request interface {
	RequestType() string
	ResponseType() string
	setHeader(typ, db string)
}

// header carries the fields common to every request envelope.
type header struct {
	Type string `json:"_type"`
	DBID string `json:"_dbId,omitempty"`
}

func (h *header) setHeader(typ, db string) {
	h.Type = typ
	if h.DBID == "" {
		h.DBID = db
	}
}

// ObjectID is the reference wrapper used for every related record.
type ObjectID struct {
	DataType     string `json:"dataType"`
	ID           string `json:"id"`
	Presentation string `json:"presentation"`
	URL          string `json:"url,omitempty"`
}

// NewObjectID builds a reference.
func NewObjectID(dataType, id, presentation string) ObjectID {
	return ObjectID{DataType: dataType, ID: id, Presentation: presentation}
}

// IsZero reports whether the reference is empty.
func (o ObjectID) IsZero() bool {
	return o.ID == ""
}

type objectIDWire struct {
	Type         string `json:"_type"`
	DataType     string `json:"dataType"`
	ID           string `json:"id"`
	Presentation string `json:"presentation"`
	URL          string `json:"url,omitempty"`
}

// MarshalJSON writes the tagged form, or null for an empty reference.
func (o ObjectID) MarshalJSON() ([]byte, error) {
	if o.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(objectIDWire{
		Type:         TypeObjectID,
		DataType:     o.DataType,
		ID:           o.ID,
		Presentation: o.Presentation,
		URL:          o.URL,
	})
}

// UnmarshalJSON accepts the tagged form or null.
func (o *ObjectID) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*o = ObjectID{}
		return nil
	}
	var w objectIDWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*o = ObjectID{DataType: w.DataType, ID: w.ID, Presentation: w.Presentation, URL: w.URL}
	return nil
}

// Condition is a filter clause of a list request.
type Condition struct {
	Property           string `json:"property"`
	ComparisonOperator string `json:"comparisonOperator"`
	Value              any    `json:"value"`
}

// MarshalJSON adds the type tag.
func (c Condition) MarshalJSON() ([]byte, error) {
	type wire struct {
		Type               string `json:"_type"`
		Property           string `json:"property"`
		ComparisonOperator string `json:"comparisonOperator"`
		Value              any    `json:"value"`
	}
	return json.Marshal(wire{TypeCondition, c.Property, c.ComparisonOperator, c.Value})
}

// SortBy orders a list request.
type SortBy struct {
	DataField string `json:"dataField"`
	Direction string `json:"direction"`
}

// MarshalJSON adds the type tag.
func (s SortBy) MarshalJSON() ([]byte, error) {
	type wire struct {
		Type      string `json:"_type"`
		DataField string `json:"dataField"`
		Direction string `json:"direction"`
	}
	return json.Marshal(wire{TypeSortBy, s.DataField, s.Direction})
}

// GetObjectListRequest fetches one window of a list.
type GetObjectListRequest struct {
	header
	DataType     string      `json:"dataType"`
	ColumnSet    []string    `json:"columnSet,omitempty"`
	SortBy       []SortBy    `json:"sortBy,omitempty"`
	PositionFrom int         `json:"positionFrom"`
	PositionTo   int         `json:"positionTo"`
	Limit        int         `json:"limit"`
	Conditions   []Condition `json:"conditions,omitempty"`
}

// NewGetObjectListRequest builds a list request for the window starting at offset.
func NewGetObjectListRequest(dataType string, offset, limit int) *GetObjectListRequest {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return &GetObjectListRequest{
		DataType:     dataType,
		PositionFrom: offset,
		PositionTo:   offset + limit - 1,
		Limit:        limit,
	}
}

func (*GetObjectListRequest) RequestType() string  { return TypeGetObjectListRequest }
func (*GetObjectListRequest) ResponseType() string { return TypeGetObjectListResponse }

// GetObjectListResponse carries one window of records plus the full count.
type GetObjectListResponse struct {
	Type       string            `json:"_type"`
	DataType   string            `json:"dataType"`
	ObjectList []json.RawMessage `json:"objectList"`
	Total      int64             `json:"total"`
}

// GetObjectsRequest loads records by reference.
type GetObjectsRequest struct {
	header
	ObjectIDs []ObjectID `json:"objectIds"`
}

func (*GetObjectsRequest) RequestType() string  { return TypeGetObjectsRequest }
func (*GetObjectsRequest) ResponseType() string { return TypeGetObjectsResponse }

// CreateObjectsRequest creates records in one call.
type CreateObjectsRequest struct {
	header
	ObjectList []any `json:"objectList"`
}

func (*CreateObjectsRequest) RequestType() string  { return TypeCreateObjectsRequest }
func (*CreateObjectsRequest) ResponseType() string { return TypeCreateObjectsResponse }

// UpdateObjectsRequest replaces records in full.
type UpdateObjectsRequest struct {
	header
	ObjectList []any `json:"objectList"`
}

func (*UpdateObjectsRequest) RequestType() string  { return TypeUpdateObjectsRequest }
func (*UpdateObjectsRequest) ResponseType() string { return TypeUpdateObjectsResponse }

// ObjectsResponse is the body of get, create and update responses.
type ObjectsResponse struct {
	Type       string            `json:"_type"`
	ObjectList []json.RawMessage `json:"objectList"`
}

// SignInRequest verifies user credentials.
type SignInRequest struct {
	header
	UserName string `json:"userName"`
	Password string `json:"password"`
}

func (*SignInRequest) RequestType() string  { return TypeSignInRequest }
func (*SignInRequest) ResponseType() string { return TypeSignInResponse }

// DefaultValues are the per-user defaults returned on sign-in.
type DefaultValues struct {
	Company     ObjectID `json:"company"`
	Currency    ObjectID `json:"currency"`
	Department  ObjectID `json:"department"`
	Warehouse   ObjectID `json:"warehouse"`
	CashAccount ObjectID `json:"cashAccount"`
	BankAccount ObjectID `json:"bankAccount"`
	PriceKind   ObjectID `json:"priceKind"`
	Employee    ObjectID `json:"employee"`
}

// SignInResponse identifies the signed-in user.
type SignInResponse struct {
	Type          string        `json:"_type"`
	User          ObjectID      `json:"user"`
	Employee      ObjectID      `json:"employee"`
	Company       ObjectID      `json:"company"`
	DefaultValues DefaultValues `json:"defaultValues"`
}

// GetFileRequest fetches an attached file or renders a print form.
type GetFileRequest struct {
	header
	FileID    string    `json:"fileId,omitempty"`
	PrintForm string    `json:"printForm,omitempty"`
	Object    *ObjectID `json:"object,omitempty"`
}

func (*GetFileRequest) RequestType() string  { return TypeGetFileRequest }
func (*GetFileRequest) ResponseType() string { return TypeGetFileResponse }

// GetFileResponse carries base64 file content; encoding/json decodes it into bytes.
type GetFileResponse struct {
	Type       string `json:"_type"`
	FileName   string `json:"fileName"`
	MimeType   string `json:"mimeType"`
	BinaryData []byte `json:"binaryData"`
}

// ErrorResponse is returned by the endpoint when a call fails.
type ErrorResponse struct {
	Type        string `json:"_type"`
	ErrorCode   string `json:"errorCode"`
	Description string `json:"description"`
}

// Decimal is a decimal written as a bare JSON number.
type Decimal struct {
	decimal.Decimal
}

// NewDecimal wraps d.
func NewDecimal(d decimal.Decimal) Decimal {
	return Decimal{d}
}

// MarshalJSON writes the value unquoted.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.Decimal.String()), nil
}

// UnmarshalJSON accepts numbers, quoted numbers and null.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		d.Decimal = decimal.Zero
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if s == "" {
		d.Decimal = decimal.Zero
		return nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	d.Decimal = v
	return nil
}

// Time is a timestamp in the endpoint's zone-less layout.
type Time struct {
	time.Time
}

// NewTime wraps t.
func NewTime(t time.Time) Time {
	return Time{t}
}

// MarshalJSON writes the zone-less layout; the zero time is the empty date.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return json.Marshal(emptyObjectTime)
	}
	return json.Marshal(t.Format(objectTimeLayout))
}

// UnmarshalJSON accepts the zone-less layout, RFC 3339, a bare date, or empty.
func (t *Time) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" || s == emptyObjectTime {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{objectTimeLayout, time.RFC3339, "2006-01-02"} {
		if v, err := time.Parse(layout, s); err == nil {
			t.Time = v
			return nil
		}
	}
	return &time.ParseError{Layout: objectTimeLayout, Value: s, Message: ": unrecognised date"}
}

func isNull(data []byte) bool {
	return string(data) == "null"
}

package xts

import (
	"context"
	"encoding/json"
	"fmt"
)

// ListResult is one decoded window of a list.
type ListResult[T any] struct {
	Objects []T
	Total   int64
}

// GetList sends a list request and decodes each object into T.
func GetList[T any](ctx context.Context, c Caller, req *GetObjectListRequest) (ListResult[T], error) {
	var resp GetObjectListResponse
	if err := c.Call(ctx, req, &resp); err != nil {
		return ListResult[T]{}, err
	}
	objects, err := decodeObjects[T](resp.ObjectList)
	if err != nil {
		return ListResult[T]{}, err
	}
	total := resp.Total
	if total < int64(req.PositionFrom+len(objects)) {
		total = int64(req.PositionFrom + len(objects))
	}
	return ListResult[T]{Objects: objects, Total: total}, nil
}

// GetObject loads a single object by reference.
func GetObject[T any](ctx context.Context, c Caller, id ObjectID) (*T, error) {
	var resp ObjectsResponse
	if err := c.Call(ctx, &GetObjectsRequest{ObjectIDs: []ObjectID{id}}, &resp); err != nil {
		return nil, err
	}
	objects, err := decodeObjects[T](resp.ObjectList)
	if err != nil {
		return nil, err
	}
	if len(objects) == 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, id.DataType, id.ID)
	}
	return &objects[0], nil
}

// CreateObject creates obj and returns the stored record.
func CreateObject[T any](ctx context.Context, c Caller, obj T) (*T, error) {
	var resp ObjectsResponse
	if err := c.Call(ctx, &CreateObjectsRequest{ObjectList: []any{obj}}, &resp); err != nil {
		return nil, err
	}
	return firstOr(resp.ObjectList, obj)
}

// UpdateObject replaces obj in full and returns the stored record.
func UpdateObject[T any](ctx context.Context, c Caller, obj T) (*T, error) {
	var resp ObjectsResponse
	if err := c.Call(ctx, &UpdateObjectsRequest{ObjectList: []any{obj}}, &resp); err != nil {
		return nil, err
	}
	return firstOr(resp.ObjectList, obj)
}

// firstOr decodes the first returned object; an empty echo returns what was sent.
func firstOr[T any](raw []json.RawMessage, sent T) (*T, error) {
	objects, err := decodeObjects[T](raw)
	if err != nil {
		return nil, err
	}
	if len(objects) == 0 {
		return &sent, nil
	}
	return &objects[0], nil
}

func decodeObjects[T any](raw []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(raw))
	for i, r := range raw {
		var obj T
		if err := json.Unmarshal(r, &obj); err != nil {
			return nil, fmt.Errorf("%w: object %d: %v", ErrInvalidResponse, i, err)
		}
		out = append(out, obj)
	}
	return out, nil
}

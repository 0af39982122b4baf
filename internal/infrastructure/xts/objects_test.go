package xts

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCaller struct {
	requests []Request
	reply    string
	err      error
}

func (f *fakeCaller) Call(_ context.Context, req Request, resp any) error {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.reply), resp)
}

type testRecord struct {
	ObjectID ObjectID `json:"objectId"`
	Name     string   `json:"name"`
}

func TestGetList(t *testing.T) {
	f := &fakeCaller{reply: `{"objectList":[{"name":"a"},{"name":"b"}],"total":0}`}
	res, err := GetList[testRecord](context.Background(), f, NewGetObjectListRequest("X", 40, 20))
	require.NoError(t, err)
	assert.Len(t, res.Objects, 2)
	assert.EqualValues(t, 42, res.Total, "total never below what was seen")
}

func TestGetObject(t *testing.T) {
	f := &fakeCaller{reply: `{"objectList":[{"name":"a"}]}`}
	rec, err := GetObject[testRecord](context.Background(), f, NewObjectID("X", "1", ""))
	require.NoError(t, err)
	assert.Equal(t, "a", rec.Name)

	req := f.requests[0].(*GetObjectsRequest)
	assert.Equal(t, "1", req.ObjectIDs[0].ID)

	f.reply = `{"objectList":[]}`
	_, err = GetObject[testRecord](context.Background(), f, NewObjectID("X", "2", ""))
	assert.ErrorIs(t, err, ErrNotFound)

	f.reply = `{"objectList":["oops"]}`
	_, err = GetObject[testRecord](context.Background(), f, NewObjectID("X", "3", ""))
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestCreateAndUpdateObject(t *testing.T) {
	f := &fakeCaller{reply: `{"objectList":[{"objectId":{"_type":"XTSObjectId","dataType":"X","id":"new"},"name":"a"}]}`}
	created, err := CreateObject(context.Background(), f, testRecord{Name: "a"})
	require.NoError(t, err)
	assert.Equal(t, "new", created.ObjectID.ID)
	_, ok := f.requests[0].(*CreateObjectsRequest)
	assert.True(t, ok)

	f.reply = `{"objectList":[]}`
	updated, err := UpdateObject(context.Background(), f, testRecord{Name: "b"})
	require.NoError(t, err)
	assert.Equal(t, "b", updated.Name, "empty echo returns what was sent")
	_, ok = f.requests[1].(*UpdateObjectsRequest)
	assert.True(t, ok)

	f.err = errors.New("down")
	_, err = UpdateObject(context.Background(), f, testRecord{})
	assert.Error(t, err)
}

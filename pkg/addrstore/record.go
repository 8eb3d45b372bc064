package addrstore

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// TimestampLayout is the created_at format, YYYY-MM-DD HH:MM:SS.
const TimestampLayout = "2006-01-02 15:04:05"

// Record is one saved address. ID is assigned by the server and is only
// populated on records read back from the collection.
type Record struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id,omitzero"`
	Address    string        `bson:"address" json:"address"`
	PrivateKey string        `bson:"private_key" json:"private_key"`
	Pattern    string        `bson:"pattern" json:"pattern"`
	CreatedAt  string        `bson:"created_at" json:"created_at"`
}

// NewRecord validates the fields and stamps CreatedAt from now.
// An empty privateKey is kept as "".
func NewRecord(address, privateKey, pattern string, now time.Time) (Record, error) {
	var errs []error
	if address == "" {
		errs = append(errs, errors.New("address is required"))
	}
	if pattern == "" {
		errs = append(errs, errors.New("pattern is required"))
	}
	if len(errs) > 0 {
		return Record{}, errors.Join(append([]error{ErrInvalidArgument}, errs...)...)
	}
	return Record{
		Address:    address,
		PrivateKey: privateKey,
		Pattern:    pattern,
		CreatedAt:  now.Format(TimestampLayout),
	}, nil
}

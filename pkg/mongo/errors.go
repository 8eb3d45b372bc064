package mongo

import "errors"

var (
	ErrInvalidURI             = errors.New("invalid mongo connection uri")
	ErrSRVLookup              = errors.New("mongo srv lookup failed")
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
	ErrPingFailed             = errors.New("mongo ping failed")
	ErrHealthcheckFailed      = errors.New("mongo healthcheck failed")
	ErrInvalidDatabaseName    = errors.New("invalid mongo database name")
	ErrInvalidCollectionName  = errors.New("invalid mongo collection name")
)

package mongo

import (
	"errors"
	"fmt"
	"strings"
)

const (
	maxDatabaseNameLen  = 64
	maxNamespaceLen     = 255
	forbiddenDBNameChar = "/\\. \"$\x00"
)

// ValidateDatabaseName checks name against the server's database naming rules.
func ValidateDatabaseName(name string) error {
	switch {
	case name == "":
		return errors.Join(ErrInvalidDatabaseName, errors.New("name is empty"))
	case len(name) >= maxDatabaseNameLen:
		return errors.Join(ErrInvalidDatabaseName,
			fmt.Errorf("%q is %d bytes, limit is %d", name, len(name), maxDatabaseNameLen-1))
	case strings.ContainsAny(name, forbiddenDBNameChar):
		return errors.Join(ErrInvalidDatabaseName,
			fmt.Errorf("%q contains one of the characters / \\ . space \" $ or NUL", name))
	}
	return nil
}

// ValidateCollectionName checks name against the server's collection naming rules.
// The database is needed to enforce the namespace length limit.
func ValidateCollectionName(database, name string) error {
	switch {
	case name == "":
		return errors.Join(ErrInvalidCollectionName, errors.New("name is empty"))
	case strings.ContainsAny(name, "$\x00"):
		return errors.Join(ErrInvalidCollectionName, fmt.Errorf("%q contains $ or NUL", name))
	case strings.HasPrefix(name, "system."):
		return errors.Join(ErrInvalidCollectionName, fmt.Errorf("%q uses the reserved system. prefix", name))
	case len(database)+1+len(name) > maxNamespaceLen:
		return errors.Join(ErrInvalidCollectionName,
			fmt.Errorf("namespace %s.%s exceeds %d bytes", database, name, maxNamespaceLen))
	}
	return nil
}

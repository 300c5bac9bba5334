package fs

import (
	"errors"
	"fmt"
	"os/user"
	"strconv"
)

// ErrUnknownOwner is returned when a numeric owner id has no registered name.
var ErrUnknownOwner = errors.New("unknown owner")

// OwnerLookup maps a numeric owner id to a user name.
type OwnerLookup func(uid uint32) (string, error)

// LookupUser resolves uid through the system user database.
func LookupUser(uid uint32) (string, error) {
	id := strconv.FormatUint(uint64(uid), 10)
	u, err := user.LookupId(id)
	if err != nil {
		var unknown user.UnknownUserIdError
		if errors.As(err, &unknown) {
			return "", fmt.Errorf("uid %d: %w", uid, ErrUnknownOwner)
		}
		return "", fmt.Errorf("lookup uid %d: %w", uid, err)
	}
	return u.Username, nil
}

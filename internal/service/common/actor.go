//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"os"
	"os/user"

	"github.com/oshokin/security-panel/internal/domain/security"
)

// DetectActor gathers host and user information for the audit trail.
func DetectActor() (*security.Actor, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}

	currentUser, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	return &security.Actor{
		Hostname: hostname,
		Username: currentUser.Username,
	}, nil
}

// Package requestid mints correlation ids for inbound HTTP requests.
package requestid

import "github.com/google/uuid"

func New() string {
	return uuid.NewString()
}

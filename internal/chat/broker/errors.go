package broker

import "errors"

// ErrTransportRequired - returns when member is built without network transport.
var ErrTransportRequired = errors.New("broker.NewMember: transport is nil")

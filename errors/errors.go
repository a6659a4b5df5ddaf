package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	// ErrAuthentication is the parent of every inbound envelope rejection.
	ErrAuthentication    = fmt.Errorf("authentication failed")
	ErrStaleTimestamp    = fmt.Errorf("%w: timestamp outside replay window", ErrAuthentication)
	ErrBadSignature      = fmt.Errorf("%w: signature does not verify", ErrAuthentication)
	ErrPublicKeyMissing  = fmt.Errorf("%w: sender public key unknown", ErrAuthentication)
	ErrDecrypt           = fmt.Errorf("%w: unable to decrypt envelope", ErrAuthentication)
	ErrMalformedEnvelope = fmt.Errorf("%w: malformed envelope", ErrAuthentication)

	ErrKeyUnavailable  = fmt.Errorf("key unavailable")
	ErrPeerNotFound    = fmt.Errorf("peer not found")
	ErrChannelNotFound = fmt.Errorf("channel not found")
	ErrChatNotFound    = fmt.Errorf("chat item not found")
	ErrUnauthorized    = fmt.Errorf("sender is not allowed to perform this operation")
	ErrStaleVersion    = fmt.Errorf("channel version is not newer than local state")
	ErrTransport       = fmt.Errorf("transport failure")
	ErrStorage         = fmt.Errorf("storage failure")
	ErrFileNotFound    = fmt.Errorf("file not found")
	ErrInvalidPayload  = fmt.Errorf("invalid payload")
	ErrHashMismatch    = fmt.Errorf("downloaded content does not match its id")
	ErrNoLeader        = fmt.Errorf("no online member can relay")
	ErrInvalidToken    = fmt.Errorf("invalid file token")
	ErrWrongPassphrase = fmt.Errorf("wrong identity passphrase")
)

func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }

package service

import "context"

// Transcriber turns a recorded interview into text. Implementations live
// outside this service; the recording flow only depends on the contract.
type Transcriber interface {
	Transcribe(ctx context.Context, mediaPath string) (string, error)
}

package v1

import (
	"time"

	"github.com/credtrack/backend/internal/mirror"
	"github.com/rs/zerolog/log"
)

// remoteMirror is the optional remote document store. When set, every
// successful mutation pushes the current export document. Local state is
// already committed when a push starts, so mirror failures only surface
// as warnings, never as request errors.
var remoteMirror *mirror.Mirror

// RegisterMirror sets the mirror used for best effort remote sync.
// Passing nil disables mirroring.
func RegisterMirror(m *mirror.Mirror) {
	remoteMirror = m
}

// pushMirror sends the full current data set to the remote mirror.
// It is called after mutations and returns immediately.
func pushMirror() {
	if remoteMirror == nil {
		return
	}

	document, err := exportDocument(time.Now())
	if err != nil {
		// The local mutation already succeeded, only the mirror push is skipped
		log.Warn().Err(err).Msg("could not assemble mirror document")
		return
	}

	remoteMirror.Push(document)
}

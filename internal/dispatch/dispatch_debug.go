package dispatch

import (
	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
)

// DispatchDebug is called after Dispatch for servers started with -debug: it
// spew-dumps the parsed tokens and the reply Dispatch returned, at Debug
// level, the same "render an
// unfamiliar value for a human" role spew plays debugging error chains
// elsewhere in this codebase's lineage.
func DispatchDebug(tokens []string, reply []byte, log *zap.Logger) {
	log.Debug("dispatch",
		zap.String("tokens", spew.Sdump(tokens)),
		zap.String("reply", spew.Sdump(reply)),
	)
}

package handler

import (
	"fmt"

	"github.com/yndnr/userhub-go/internal/core/service"
)

// computeTag derives the entity tag for the user collection. The tag is
// a stable function of the store's mutation counter and size, so it
// changes whenever the collection changes. Wire format is quoted.
func computeTag(state service.CollectionState) string {
	return fmt.Sprintf("%q", fmt.Sprintf("users-v%d-c%d", state.Version, state.Count))
}

// isFresh decides the 304-vs-200 outcome for a conditional request:
// exact string equality between the presented and current tags.
func isFresh(requestTag, currentTag string) bool {
	return requestTag != "" && requestTag == currentTag
}

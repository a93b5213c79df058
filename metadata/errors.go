package metadata

import "errors"

// ErrAssemblyResolutionDisabled is returned by NonFollowingResolver
// for every scope: this loader never chases assembly references
// transitively (spec.md §6).
var ErrAssemblyResolutionDisabled = errors.New("metadata: assembly resolution is disabled for this loader")

package gpu

import "errors"

// ErrGPUUnavailable is returned by PrecomputeDealerPMFs whenever the binary
// was not built with the 'gpu' tag against a real CUDA toolchain. The CPU
// build still does the precompute work; the error only tells the caller it
// ran on the CPU path rather than offloading to a kernel. Lives in a
// tag-neutral file since both the 'gpu' and '!gpu' build variants reference
// it.
var ErrGPUUnavailable = errors.New("gpu: no GPU backend available in this build")

// Package addressing converts between N-D logical frame addresses and
// linear frame indices, and implements the left-justify/regularize
// transforms over frame buffers. spec.md §4.6.
package addressing

import (
	"fmt"

	"github.com/deploymenttheory/go-javaseis/internal/types"
)

// AddressToLinear converts a logical address over the "outer" axes
// (frame, volume, hypercube — i.e. Descriptor.Axes[2:]) to a 1-based
// linear frame index. spec.md §4.6.
func AddressToLinear(axes []types.Axis, address []int64) (int64, error) {
	if len(address) != len(axes) {
		return 0, types.Precondition("addressing.AddressToLinear", fmt.Errorf(
			"address has %d components, want %d", len(address), len(axes)))
	}
	grids := make([]int64, len(axes))
	for k, ax := range axes {
		delta := address[k] - ax.LogicalOrigin
		if ax.LogicalDelta == 0 || delta%ax.LogicalDelta != 0 {
			return 0, types.Precondition("addressing.AddressToLinear", fmt.Errorf(
				"address component %d (%d) is not aligned to origin %d / delta %d",
				k, address[k], ax.LogicalOrigin, ax.LogicalDelta))
		}
		grid := delta / ax.LogicalDelta
		if grid < 0 || grid >= int64(ax.Length) {
			return 0, types.Precondition("addressing.AddressToLinear", fmt.Errorf(
				"address component %d (%d) is outside axis range [%d,%d]",
				k, address[k], ax.LogicalOrigin, ax.MaxLogical()))
		}
		grids[k] = grid
	}
	var linear, multiplier int64 = 0, 1
	for k := range axes {
		linear += grids[k] * multiplier
		multiplier *= int64(axes[k].Length)
	}
	return linear + 1, nil
}

// LinearToAddress is the inverse of AddressToLinear: column-major
// decomposition of a 1-based linear frame index back into a logical
// address over axes.
func LinearToAddress(axes []types.Axis, linear int64) ([]int64, error) {
	if linear < 1 {
		return nil, types.Precondition("addressing.LinearToAddress", fmt.Errorf("linear index %d must be >= 1", linear))
	}
	idx := linear - 1
	address := make([]int64, len(axes))
	for k, ax := range axes {
		grid := idx % int64(ax.Length)
		idx /= int64(ax.Length)
		address[k] = ax.LogicalOrigin + grid*ax.LogicalDelta
	}
	if idx != 0 {
		return nil, types.Precondition("addressing.LinearToAddress", fmt.Errorf(
			"linear index %d is outside the addressable range", linear))
	}
	return address, nil
}

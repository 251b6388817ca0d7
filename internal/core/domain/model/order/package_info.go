package order

import "dispatch/internal/pkg/errs"

// PackageInfo describes the physical package attached to an order.
// Weight is kept as free text ("2kg", "light") since robots do not weigh
// packages; fragile toggles careful-handling mode on the robot side.
type PackageInfo struct {
	packageType string
	weight      string
	fragile     bool
	description string
}

// NewPackageInfo creates package attributes for an order.
// The package type is the only required field.
func NewPackageInfo(packageType, weight string, fragile bool, description string) (PackageInfo, error) {
	if packageType == "" {
		return PackageInfo{}, errs.NewValueIsRequiredError("packageType")
	}
	return PackageInfo{
		packageType: packageType,
		weight:      weight,
		fragile:     fragile,
		description: description,
	}, nil
}

// Type returns the package type.
func (p PackageInfo) Type() string {
	return p.packageType
}

// Weight returns the free-text weight.
func (p PackageInfo) Weight() string {
	return p.weight
}

// Fragile reports whether the package needs careful handling.
func (p PackageInfo) Fragile() bool {
	return p.fragile
}

// Description returns the optional package description.
func (p PackageInfo) Description() string {
	return p.description
}

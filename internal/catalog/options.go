package catalog

import "slices"

// Defaults used when an application is submitted without a choice.
const (
	DefaultRole         = "Software Engineer"
	DefaultLocation     = "Remote"
	DefaultPackageRange = "10-20 LPA"
)

var (
	roleOptions = []string{
		"Software Engineer",
		"Frontend Developer",
		"Backend Developer",
		"Full Stack Developer",
		"DevOps Engineer",
		"Data Scientist",
		"Product Manager",
		"UX Designer",
	}
	locationOptions = []string{
		"Remote",
		"Bangalore",
		"Hyderabad",
		"Pune",
		"Mumbai",
		"Delhi",
		"Chennai",
		"Gurgaon",
		"International",
	}
	packageOptions = []string{
		"0-10 LPA",
		"10-20 LPA",
		"20-30 LPA",
		"30-40 LPA",
		"40-50 LPA",
		"50+ LPA",
	}
)

// RoleOptions lists the selectable roles.
func RoleOptions() []string { return slices.Clone(roleOptions) }

// LocationOptions lists the selectable locations.
func LocationOptions() []string { return slices.Clone(locationOptions) }

// PackageOptions lists the selectable package ranges.
func PackageOptions() []string { return slices.Clone(packageOptions) }

// IsRole reports whether role is a catalog role.
func IsRole(role string) bool { return slices.Contains(roleOptions, role) }

// IsLocation reports whether location is a catalog location.
func IsLocation(location string) bool { return slices.Contains(locationOptions, location) }

// IsPackageRange reports whether pkg is a catalog package range.
func IsPackageRange(pkg string) bool { return slices.Contains(packageOptions, pkg) }

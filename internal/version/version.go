// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Live config reload, fixed stars, evening-sky arc, JSON/YAML export
// 0.2.0 - VSOP87 planets with orbital-element fallback, info cards
// 0.1.0 - Initial release: zodiac wheel, true/traditional transition, headless chart

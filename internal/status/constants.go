// internal/status/constants.go
package status

// Panel Status Block layout constants.
// These values define the protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerDevice is the fixed number of logical slots per device.
const SlotsPerDevice = 20

// ---- SLOT INDICES ----

// SlotHealthCode holds the panel link health state.
const SlotHealthCode = 0

// SlotLastErrorCode holds the last raw error code.
const SlotLastErrorCode = 1

// SlotSecondsInError holds the duration (in seconds) the link has been in error.
const SlotSecondsInError = 2

// ---- PIPELINE COUNTERS ----
// Each counter saturates at 65535.

// SlotFlushes holds the number of END lines processed.
const SlotFlushes = 3

// SlotRedrawn holds the number of regions repainted.
const SlotRedrawn = 4

// SlotApplied holds the number of key=value lines stored.
const SlotApplied = 5

// SlotDiscarded holds the number of malformed lines dropped.
const SlotDiscarded = 6

// SlotTruncated holds the number of lines cut at the line bound.
const SlotTruncated = 7

// SlotUnknownKeys holds the number of well-formed lines with unknown keys.
const SlotUnknownKeys = 8

// SlotLiveEnd is the last slot rewritten incrementally (inclusive).
const SlotLiveEnd = SlotUnknownKeys

// ---- RESERVED RANGE ----

// Slots 9-10 are reserved for future use.
const SlotReservedStart = 9
const SlotReservedEnd = 10

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
// Device name is always placed at the END of the status block.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// ---- HEALTH CODES ----

// HealthUnknown represents an unknown or boot state.
const HealthUnknown uint16 = 0

// HealthOK represents a healthy link.
const HealthOK uint16 = 1

// HealthError represents a link error state.
const HealthError uint16 = 2

// HealthStale represents a link that is up but has gone quiet.
const HealthStale uint16 = 3

// HealthDisabled represents a disabled panel.
const HealthDisabled uint16 = 4

package entities

// Timestamp is a point in time expressed in seconds since the unix epoch.
type Timestamp int64

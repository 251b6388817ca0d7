// Package robot contains the Robot aggregate: one autonomous delivery unit
// tracked by duty-cycle status, cargo door state, telemetry, and the timers
// driving timeout recovery (delivery start, pickup-wait start).
package robot

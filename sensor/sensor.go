// Package sensor supplies inertial telemetry for the host's data-logging
// mode. Hardware integrations implement Sampler; Sim is the default for
// hosts without hardware.
package sensor

import "math"

// Reading is one accelerometer/gyro sample in the NED body frame,
// acceleration in m/s^2 and angular rate in deg/s.
type Reading struct {
	Acc  [3]float64
	Gyro [3]float64
}

// Sampler produces readings on demand.
type Sampler interface {
	Sample() (Reading, error)
}

// Sim is a deterministic simulated sampler producing a smooth synthetic
// motion profile.
type Sim struct {
	t    float64
	step float64
}

// NewSim creates a simulated sampler.
func NewSim() *Sim {
	return &Sim{step: 0.02}
}

// Reset rewinds the profile to its start, standing in for the re-zeroing a
// hardware sampler performs during calibration.
func (s *Sim) Reset() {
	s.t = 0
}

// Sample advances the profile one step. Raw axes are mapped to the NED frame
// the same way the hardware path does: x/y swapped, acceleration scaled from
// g units to m/s^2.
func (s *Sim) Sample() (Reading, error) {
	s.t += s.step
	rawAcc := [3]float64{math.Sin(s.t), math.Cos(s.t), 1}
	rawGyro := [3]float64{10 * math.Cos(s.t), 10 * math.Sin(s.t), 0}

	var r Reading
	r.Acc[0] = rawAcc[1] * 9.81
	r.Acc[1] = rawAcc[0] * 9.81
	r.Acc[2] = rawAcc[2] * 9.81
	r.Gyro[0] = rawGyro[1]
	r.Gyro[1] = rawGyro[0]
	r.Gyro[2] = rawGyro[2]
	return r, nil
}

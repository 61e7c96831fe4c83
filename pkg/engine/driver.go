// pkg/engine/driver.go
package engine

// Driver is the fixed-rate tick source behind an Arena. Start on a running
// driver and Stop on a stopped driver are no-ops. Implementations are
// called only from the goroutine that owns the Arena.
type Driver interface {
	Start()
	Stop()
	Running() bool
}

// ManualDriver is a Driver without a clock. Ticks are issued by the caller,
// usually through Arena.Settle. Used for tests and headless replay.
type ManualDriver struct {
	running bool
	starts  int
	stops   int
}

// NewManualDriver creates a stopped manual driver
func NewManualDriver() *ManualDriver {
	return &ManualDriver{}
}

// Start marks the driver as running
func (d *ManualDriver) Start() {
	if d.running {
		return
	}
	d.running = true
	d.starts++
}

// Stop marks the driver as stopped
func (d *ManualDriver) Stop() {
	if !d.running {
		return
	}
	d.running = false
	d.stops++
}

// Running reports whether the driver is running
func (d *ManualDriver) Running() bool {
	return d.running
}

// Starts returns how many times the driver went from stopped to running
func (d *ManualDriver) Starts() int {
	return d.starts
}

// Stops returns how many times the driver went from running to stopped
func (d *ManualDriver) Stops() int {
	return d.stops
}

package allocator

// StaffLoad is the running total for one staff member.
// Time is kept in whole minutes so totals compare exactly.
type StaffLoad struct {
	Minutes    int
	ShiftCount int
}

// Workload tracks per-staff hours and shift counts while solving.
// Every roster member is present from the start with zero load.
type Workload struct {
	loads map[string]*StaffLoad
}

// NewWorkload creates a tracker with a zero entry for each staff ID
func NewWorkload(staffIDs []string) *Workload {
	w := &Workload{loads: make(map[string]*StaffLoad, len(staffIDs))}
	for _, staffID := range staffIDs {
		w.loads[staffID] = &StaffLoad{}
	}
	return w
}

// Record adds one shift of the given length in minutes to the staff member's totals
func (w *Workload) Record(staffID string, minutes int) {
	load, ok := w.loads[staffID]
	if !ok {
		load = &StaffLoad{}
		w.loads[staffID] = load
	}
	load.Minutes += minutes
	load.ShiftCount++
}

// Minutes returns the staff member's assigned minutes so far
func (w *Workload) Minutes(staffID string) int {
	if load, ok := w.loads[staffID]; ok {
		return load.Minutes
	}
	return 0
}

// Hours returns the staff member's assigned hours so far
func (w *Workload) Hours(staffID string) float64 {
	return float64(w.Minutes(staffID)) / 60
}

// ShiftCount returns the staff member's assigned shift count so far
func (w *Workload) ShiftCount(staffID string) int {
	if load, ok := w.loads[staffID]; ok {
		return load.ShiftCount
	}
	return 0
}

// HoursByStaff returns a copy of the hours totals
func (w *Workload) HoursByStaff() map[string]float64 {
	hours := make(map[string]float64, len(w.loads))
	for staffID, load := range w.loads {
		hours[staffID] = float64(load.Minutes) / 60
	}
	return hours
}

// ShiftCountByStaff returns a copy of the shift count totals
func (w *Workload) ShiftCountByStaff() map[string]int {
	counts := make(map[string]int, len(w.loads))
	for staffID, load := range w.loads {
		counts[staffID] = load.ShiftCount
	}
	return counts
}

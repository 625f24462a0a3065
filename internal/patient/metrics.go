package patient

// Raw metrics read directly from a column.
const (
	GeneralBedUsage = "(重症者用でない) 確保病床使用率"
	GeneralBeds     = "(重症者用でない) 確保病床数"
	SevereBedUsage  = "(重症者用) 確保病床使用率"
	SevereBeds      = "(重症者用) 確保病床数"
	HotelRoomUsage  = "(宿泊療養施設) 確保居室使用率"
	HotelRooms      = "(宿泊療養施設) 確保居室数"

	Patients          = "療養者数"
	Inpatients        = "入院者数"
	HotelPatients     = "宿泊療養者数"
	HomePatients      = "自宅療養者等数"
	Coordinating      = "療養先調整中の人数"
	AwaitingAdmission = "入院先調整中の人数"

	// Only published separately before the layout change.
	HomeOnlyPatients        = "自宅療養者数"
	WelfareFacilityPatients = "社会福士施設等療養者数"
)

// Ratios derived from the patient counts.
const (
	AdmissionRate    = "入院率"
	HotelRate        = "宿泊療養である割合"
	HomeRate         = "自宅療養である割合"
	CoordinatingRate = "療養先調整中である割合"
)

// Group is a set of metrics charted together.
type Group struct {
	Name    string
	Title   string
	Metrics []string
	LogY    bool
}

// Groups lists the chart groups in display order.
var Groups = []Group{
	{
		Name:    "bed-usage",
		Title:   "ベッドおよび部屋の使用率",
		Metrics: []string{GeneralBedUsage, SevereBedUsage, HotelRoomUsage},
	},
	{
		Name:    "bed-count",
		Title:   "ベッドおよび部屋の数",
		Metrics: []string{GeneralBeds, SevereBeds, HotelRooms},
	},
	{
		Name:    "admission",
		Title:   "患者の療養等先の割合",
		Metrics: []string{AdmissionRate, HotelRate, HomeRate, CoordinatingRate},
	},
	{
		Name:    "type-count-1",
		Title:   "療養者数との内訳",
		Metrics: []string{Patients, Inpatients, HotelPatients, HomePatients, Coordinating},
		LogY:    true,
	},
	{
		Name:    "type-count-2",
		Title:   "調整中の人数",
		Metrics: []string{Coordinating, AwaitingAdmission},
		LogY:    true,
	},
}

// GroupByName finds a chart group.
func GroupByName(name string) (Group, bool) {
	for _, g := range Groups {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// AllMetrics returns every metric of every group, without duplicates, in
// group order.
func AllMetrics() []string {
	seen := make(map[string]bool)
	var out []string
	for _, g := range Groups {
		for _, m := range g.Metrics {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}

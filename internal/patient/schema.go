package patient

import (
	"time"

	"github.com/pfrederiksen/jp-covid-stats/internal/layout"
)

// JST is the zone report timestamps are published in.
var JST = time.FixedZone("JST", 9*60*60)

// Cutoff is when the report layout gained the coordination columns and
// merged home and welfare-facility patients into one column.
var Cutoff = time.Date(2021, 6, 2, 0, 0, 0, 0, JST)

// HeaderRow holds the column labels in both layouts.
const HeaderRow = 7

var current = layout.Version{
	Name:          "2021-06",
	EffectiveFrom: Cutoff,
	HeaderRow:     HeaderRow,
	Columns: map[string]layout.Column{
		GeneralBedUsage:   {Index: 10, Header: layout.Exact("確保病床\n使用率\n（注５）")},
		GeneralBeds:       {Index: 9, Header: layout.Prefix("確保病床数\n")},
		SevereBedUsage:    {Index: 17, Header: layout.Exact("確保病床\n使用率\n（注５）")},
		SevereBeds:        {Index: 16, Header: layout.Prefix("確保病床数\n")},
		HotelRoomUsage:    {Index: 22, Header: layout.Exact("確保居室\n使用率\n（注９）")},
		HotelRooms:        {Index: 21, Header: layout.Prefix("確保居室数\n")},
		Patients:          {Index: 4, Header: layout.Exact("（１）療養\n者数\n（注１）")},
		Inpatients:        {Index: 5, Header: layout.Exact("（２）①-1\n入院者数")},
		HotelPatients:     {Index: 18, Header: layout.Exact("（３）宿泊\n療養者数")},
		HomePatients:      {Index: 23, Header: layout.Exact("（４）①-1\n自宅療養者\n等数")},
		Coordinating:      {Index: 25, Header: layout.Exact("（５）①-1\n療養先調整\n中の人数\n（注10）")},
		AwaitingAdmission: {Index: 26, Header: layout.Exact("（５）①-2\nうち、入院\n先調整中の\n人数\n(注11)")},
	},
}

var initial = layout.Version{
	Name:          "2020",
	EffectiveFrom: time.Date(2020, 1, 1, 0, 0, 0, 0, JST),
	HeaderRow:     HeaderRow,
	Columns: map[string]layout.Column{
		GeneralBedUsage:         {Index: 8, Header: layout.Exact("確保病床数に対する使用率")},
		GeneralBeds:             {Index: 7, Header: layout.Prefix("確保病床数\n")},
		SevereBedUsage:          {Index: 13, Header: layout.Exact("確保病床数に対する使用率")},
		SevereBeds:              {Index: 12, Header: layout.Prefix("確保病床数\n")},
		HotelRoomUsage:          {Index: 18, Header: layout.Exact("確保居室数に対する使用率")},
		HotelRooms:              {Index: 17, Header: layout.Prefix("確保居室数\n")},
		Patients:                {Index: 4, Header: layout.Suffix("（１）PCR検査陽性者数（退院者等除く。）（注１,２）")},
		Inpatients:              {Index: 5, Header: layout.Suffix("（２）入院者数（入院確定者数を含む）")},
		HotelPatients:           {Index: 15, Header: layout.Suffix("（３）宿泊療養者数")},
		HomeOnlyPatients:        {Index: 20, Header: layout.Suffix("（４）自宅療養者数")},
		WelfareFacilityPatients: {Index: 21, Header: layout.Contains("社会福")},
		Coordinating:            layout.NotApplicable,
		AwaitingAdmission:       layout.NotApplicable,
	},
	Composites: map[string]layout.Composite{
		HomePatients: layout.Sum{A: HomeOnlyPatients, B: WelfareFacilityPatients},
	},
}

// Schema is the report layout history.
var Schema = layout.MustSchema(
	map[string]layout.Composite{
		AdmissionRate:    layout.Ratio{Num: Inpatients, Den: Patients},
		HotelRate:        layout.Ratio{Num: HotelPatients, Den: Patients},
		HomeRate:         layout.Ratio{Num: HomePatients, Den: Patients},
		CoordinatingRate: layout.Ratio{Num: Coordinating, Den: Patients},
	},
	initial,
	current,
)

package models

// ServiceInfo describes one government service citizens can book through the
// assistant.
type ServiceInfo struct {
	Type         string   `json:"type"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Department   string   `json:"department"`
	TimeSlots    []string `json:"time_slots"`
	Requirements []string `json:"requirements"`
	PortalPath   string   `json:"portal_path"`
}

// Service type keys used as the service_type entity value.
const (
	ServicePassport       = "passport"
	ServiceNationalID     = "national_id"
	ServiceDrivingLicense = "driving_license"
	ServiceGoodConduct    = "good_conduct"
)

// ServiceTypes fixes the display order of the directory.
var ServiceTypes = []string{
	ServicePassport,
	ServiceNationalID,
	ServiceDrivingLicense,
	ServiceGoodConduct,
}

// GovernmentServices is the static directory of bookable services.
var GovernmentServices = map[string]ServiceInfo{
	ServicePassport: {
		Type:        ServicePassport,
		Name:        "Passport Application",
		Description: "Apply for a new Kenyan passport or renew an existing one",
		Department:  "Immigration Department",
		TimeSlots:   []string{string(SlotMorning), string(SlotAfternoon)},
		Requirements: []string{
			"National ID card",
			"Birth certificate",
			"2 passport photos",
			"Application fee payment receipt",
		},
		PortalPath: "/immigration/passport",
	},
	ServiceNationalID: {
		Type:        ServiceNationalID,
		Name:        "National ID Application",
		Description: "Apply for a new national identification card",
		Department:  "National Registration Bureau",
		TimeSlots:   []string{string(SlotMorning), string(SlotAfternoon)},
		Requirements: []string{
			"Birth certificate",
			"Notification of birth",
			"School leaving certificate",
			"2 passport photos",
		},
		PortalPath: "/nrb/id-application",
	},
	ServiceDrivingLicense: {
		Type:        ServiceDrivingLicense,
		Name:        "Driving License",
		Description: "Apply for or renew a driving license",
		Department:  "NTSA",
		TimeSlots:   []string{string(SlotMorning), string(SlotAfternoon)},
		Requirements: []string{
			"National ID card",
			"Medical certificate",
			"Driving school certificate",
			"2 passport photos",
		},
		PortalPath: "/ntsa/driving-license",
	},
	ServiceGoodConduct: {
		Type:        ServiceGoodConduct,
		Name:        "Certificate of Good Conduct",
		Description: "Apply for a police clearance certificate",
		Department:  "Directorate of Criminal Investigations",
		TimeSlots:   []string{string(SlotMorning), string(SlotAfternoon)},
		Requirements: []string{
			"National ID card",
			"2 passport photos",
			"Fingerprint capture",
		},
		PortalPath: "/dci/good-conduct",
	},
}

// ServiceDisplayName returns the directory name for a service type, or a
// generic label when the type is unknown or empty.
func ServiceDisplayName(serviceType string) string {
	if info, ok := GovernmentServices[serviceType]; ok {
		return info.Name
	}
	return "the service"
}

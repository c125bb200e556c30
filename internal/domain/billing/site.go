package billing

import "fmt"

// Techno is the production technology of a site.
type Techno string

// Supported production technologies
const (
	TechnoWindTurbineOnshore  Techno = "wind_turbine_onshore"
	TechnoWindTurbineOffshore Techno = "wind_turbine_offshore"

	TechnoSolarFieldGroundMounted Techno = "solar_field_ground_mounted"
	TechnoSolarFieldRooftop       Techno = "solar_field_rooftop"
	TechnoSolarFieldCanopy        Techno = "solar_field_canopy"

	TechnoHydroTurbineRunOfRiver    Techno = "hydro_turbine_run_of_river"
	TechnoHydroTurbinePumpedStorage Techno = "hydro_turbine_pumped_storage"
	TechnoHydroTurbineReservoir     Techno = "hydro_turbine_reservoir"

	TechnoCogenerationBiomass Techno = "cogeneration_biomass"
	TechnoCogenerationWaste   Techno = "cogeneration_waste"
	TechnoCogenerationOther   Techno = "cogeneration_other"
)

// Technos lists every supported technology in declaration order.
var Technos = []Techno{
	TechnoWindTurbineOnshore,
	TechnoWindTurbineOffshore,
	TechnoSolarFieldGroundMounted,
	TechnoSolarFieldRooftop,
	TechnoSolarFieldCanopy,
	TechnoHydroTurbineRunOfRiver,
	TechnoHydroTurbinePumpedStorage,
	TechnoHydroTurbineReservoir,
	TechnoCogenerationBiomass,
	TechnoCogenerationWaste,
	TechnoCogenerationOther,
}

// IsValid reports whether t is one of the supported technologies.
func (t Techno) IsValid() bool {
	for _, known := range Technos {
		if t == known {
			return true
		}
	}
	return false
}

// Site is a power production site.
type Site struct {
	ID   int64
	Name string `validate:"required,min=1,max=100"`
	// Capacity is the installed capacity in kW
	Capacity float64 `validate:"gt=0"`
	Techno   Techno  `validate:"techno"`

	Contracts []*Contract `validate:"-"`
}

// Validate for validating Site struct
func (s *Site) Validate() error {
	return validateStruct(s)
}

func (s *Site) String() string {
	return s.Name
}

// GoString renders the site for %#v.
func (s *Site) GoString() string {
	return fmt.Sprintf("<Site n°%d - %s>", s.ID, s.String())
}

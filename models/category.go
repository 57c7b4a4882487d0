package models

// CanonicalCategories is the closed set of target category names that
// free-text delivery unit labels are mapped onto. The structured
// classification tool declares this exact list as its enum, so any model
// output outside the set is rejected by the serving layer.
var CanonicalCategories = []string{
	"Accident and Emergency",
	"Acute Medical Unit",
	"Ambulatory Care",
	"Anaesthetics",
	"Audiology",
	"Breast Screening",
	"Burns Unit",
	"Cardiology",
	"Cardiothoracic Surgery",
	"Chemotherapy Day Unit",
	"Community Midwifery",
	"Coronary Care Unit",
	"Critical Care Outreach",
	"Day Surgery Unit",
	"Dermatology",
	"Diabetes and Endocrinology",
	"Dietetics",
	"Ear Nose and Throat",
	"Elderly Care",
	"Fracture Clinic",
	"Gastroenterology",
	"General Surgery",
	"Gynaecology",
	"Haematology",
	"High Dependency Unit",
	"Infectious Diseases",
	"Intensive Care Unit",
	"Labour Ward",
	"Maternity Triage",
	"Maxillofacial Surgery",
	"Neonatal Intensive Care",
	"Nephrology",
	"Neurology",
	"Neurosurgery",
	"Nuclear Medicine",
	"Occupational Therapy",
	"Oncology",
	"Ophthalmology",
	"Orthopaedics",
	"Outpatient Pharmacy",
	"Paediatric Assessment Unit",
	"Paediatrics",
	"Pain Management",
	"Palliative Care",
	"Pathology",
	"Physiotherapy",
	"Plastic Surgery",
	"Postnatal Ward",
	"Radiology",
	"Rehabilitation Unit",
	"Respiratory Medicine",
	"Rheumatology",
	"Sexual Health",
	"Stroke Unit",
	"Urology",
}

type Category struct {
	Name string `json:"name"`
}

// CategoryMatch is the outcome of normalizing a free-text model answer
// against the canonical set.
type CategoryMatch struct {
	Input    string `json:"input"`
	Category string `json:"category"`
	Matched  bool   `json:"matched"`
	Exact    bool   `json:"exact"`
	Rank     int    `json:"rank"`
}

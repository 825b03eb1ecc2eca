package catalog

// familyInfo is the fixed metadata for the SP 800-53 rev 5 control families.
type familyInfo struct {
	Name        string
	Description string
}

var familyNames = map[string]familyInfo{
	"AC": {"Access Control", "Controls for limiting system access"},
	"AT": {"Awareness and Training", "Security awareness and training"},
	"AU": {"Audit and Accountability", "Controls for system auditing"},
	"CA": {"Assessment, Authorization, and Monitoring", "Security assessment"},
	"CM": {"Configuration Management", "System configuration controls"},
	"CP": {"Contingency Planning", "Emergency response planning"},
	"IA": {"Identification and Authentication", "User identity management"},
	"IR": {"Incident Response", "Security incident handling"},
	"MA": {"Maintenance", "System maintenance controls"},
	"MP": {"Media Protection", "Storage media protection"},
	"PE": {"Physical and Environmental Protection", "Physical security"},
	"PL": {"Planning", "Security planning controls"},
	"PM": {"Program Management", "Security program management"},
	"PS": {"Personnel Security", "Personnel security controls"},
	"RA": {"Risk Assessment", "Risk management controls"},
	"SA": {"System and Services Acquisition", "Acquisition security"},
	"SC": {"System and Communications Protection", "System security"},
	"SI": {"System and Information Integrity", "Information integrity"},
}

// FamilyName returns the human name for a two-letter family code, falling
// back to a generic label for codes outside the fixed table.
func FamilyName(code string) string {
	if info, ok := familyNames[code]; ok {
		return info.Name
	}
	return code + " Family"
}

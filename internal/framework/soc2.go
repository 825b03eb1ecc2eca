package framework

// SOC2Requirements maps SOC 2 Trust Services Criteria to the SP 800-53
// controls that satisfy them. A simplified mapping; comprehensive mapping
// files can replace it at load time.
var SOC2Requirements = map[string][]string{
	"CC6.1": {"AC-1", "AC-2", "AC-3", "AC-5", "AC-6"},
	"CC6.2": {"AC-7", "AC-8", "AC-11", "AC-12"},
	"CC6.3": {"AC-17", "AC-18", "AC-19", "AC-20"},
	"CC7.1": {"AU-1", "AU-2", "AU-3", "AU-6", "AU-12"},
	"CC7.2": {"AU-4", "AU-5", "AU-9", "AU-11"},
	"CC8.1": {"CM-1", "CM-2", "CM-3", "CM-5", "CM-6"},
}

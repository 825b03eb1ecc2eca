package framework

// ISO27001Requirements maps ISO/IEC 27001 Annex A controls to SP 800-53
// controls.
var ISO27001Requirements = map[string][]string{
	"A.9.1.1":  {"AC-1", "AC-2"},
	"A.9.1.2":  {"AC-3", "AC-5", "AC-6"},
	"A.9.2.1":  {"AC-7", "AC-8"},
	"A.12.4.1": {"AU-1", "AU-2", "AU-3"},
	"A.12.4.2": {"AU-6", "AU-12"},
	"A.12.6.1": {"CM-1", "CM-2", "CM-3"},
}

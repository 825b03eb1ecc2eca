package loader

import (
	"github.com/ethanolivertroy/nist-grc/internal/catalog"
	"github.com/ethanolivertroy/nist-grc/internal/framework"
)

// Sample returns the built-in dataset: a representative slice of SP 800-53
// rev 5 across ten families, three monotonic baselines, a CSF 2.0 slice,
// and the built-in mapping tables. It keeps the CLI usable before any data
// directory has been populated and doubles as fixture data in tests.
func Sample() catalog.Input {
	return catalog.Input{
		Controls:    sampleControls(),
		Baselines:   sampleBaselines(),
		CSF:         sampleCSF(),
		CSFMappings: sampleCSFMappings(),
		Frameworks: map[string]map[string][]string{
			"soc2":     framework.SOC2Requirements,
			"iso27001": framework.ISO27001Requirements,
		},
		CMMCLevels: framework.DefaultCMMCLevels(),
	}
}

func ctl(id, title, statement string) catalog.Control {
	return catalog.Control{ID: id, Title: title, Statement: statement}
}

func sampleControls() []catalog.Control {
	return []catalog.Control{
		// Access Control
		ctl("AC-1", "Policy and Procedures", "Develop, document, and disseminate access control policy and procedures."),
		{ID: "AC-2", Title: "Account Management", Statement: "Define and manage system account types, membership, and access authorizations.", Related: []string{"AC-3", "AC-6", "IA-2"}},
		ctl("AC-2(1)", "Automated System Account Management", "Support the management of system accounts using automated mechanisms."),
		ctl("AC-2(2)", "Automated Temporary and Emergency Account Management", "Automatically remove or disable temporary and emergency accounts after a defined period."),
		{ID: "AC-3", Title: "Access Enforcement", Statement: "Enforce approved authorizations for logical access to information and system resources.", Related: []string{"AC-2", "AC-6"}},
		ctl("AC-5", "Separation of Duties", "Identify and define duties requiring separation and divide them among individuals."),
		{ID: "AC-6", Title: "Least Privilege", Statement: "Employ the principle of least privilege, allowing only authorized accesses necessary to accomplish assigned tasks.", Related: []string{"AC-2", "AC-3"}},
		ctl("AC-6(1)", "Authorize Access to Security Functions", "Authorize access to security functions and security-relevant information explicitly."),
		ctl("AC-7", "Unsuccessful Logon Attempts", "Enforce a limit of consecutive invalid logon attempts and take defined actions when exceeded."),
		ctl("AC-8", "System Use Notification", "Display a system use notification before granting access to the system."),
		ctl("AC-11", "Device Lock", "Prevent further access by initiating a device lock after a defined period of inactivity."),
		ctl("AC-12", "Session Termination", "Automatically terminate a user session after defined conditions of disconnect."),
		ctl("AC-17", "Remote Access", "Establish usage restrictions and authorize each type of remote access prior to allowing such connections."),
		ctl("AC-18", "Wireless Access", "Establish configuration requirements and authorize each type of wireless access."),
		ctl("AC-19", "Access Control for Mobile Devices", "Establish configuration and connection requirements for organization-controlled mobile devices."),
		ctl("AC-20", "Use of External Systems", "Establish terms and conditions for authorized individuals to access the system from external systems."),

		// Audit and Accountability
		ctl("AU-1", "Policy and Procedures", "Develop, document, and disseminate audit and accountability policy and procedures."),
		ctl("AU-2", "Event Logging", "Identify the types of events that the system is capable of logging in support of the audit function."),
		ctl("AU-3", "Content of Audit Records", "Ensure audit records contain what type of event occurred, when, where, the source, and the outcome."),
		ctl("AU-4", "Audit Log Storage Capacity", "Allocate audit log storage capacity to accommodate audit log retention requirements."),
		ctl("AU-5", "Response to Audit Logging Process Failures", "Alert designated personnel and take defined actions upon an audit logging process failure."),
		{ID: "AU-6", Title: "Audit Record Review, Analysis, and Reporting", Statement: "Review and analyze system audit records for indications of inappropriate or unusual activity and report findings.", Related: []string{"SI-4"}},
		ctl("AU-9", "Protection of Audit Information", "Protect audit information and audit logging tools from unauthorized access, modification, and deletion."),
		ctl("AU-11", "Audit Record Retention", "Retain audit records for a defined period consistent with the records retention policy."),
		ctl("AU-12", "Audit Record Generation", "Provide audit record generation capability for the event types the system is capable of logging."),

		// Assessment, Authorization, and Monitoring
		ctl("CA-1", "Policy and Procedures", "Develop, document, and disseminate assessment, authorization, and monitoring policy and procedures."),
		ctl("CA-7", "Continuous Monitoring", "Develop a continuous monitoring strategy including ongoing security and privacy control assessments."),

		// Configuration Management
		ctl("CM-1", "Policy and Procedures", "Develop, document, and disseminate configuration management policy and procedures."),
		ctl("CM-2", "Baseline Configuration", "Develop, document, and maintain a current baseline configuration of the system."),
		ctl("CM-3", "Configuration Change Control", "Determine and document the types of changes to the system that are configuration-controlled."),
		ctl("CM-5", "Access Restrictions for Change", "Define, document, approve, and enforce physical and logical access restrictions associated with changes."),
		ctl("CM-6", "Configuration Settings", "Establish and document configuration settings for system components using security configuration checklists."),
		ctl("CM-8", "System Component Inventory", "Develop and document an inventory of system components that accurately reflects the system."),

		// Contingency Planning
		ctl("CP-9", "System Backup", "Conduct backups of user-level and system-level information at a defined frequency."),
		ctl("CP-10", "System Recovery and Reconstitution", "Provide for the recovery and reconstitution of the system to a known state within a defined period."),

		// Identification and Authentication
		ctl("IA-1", "Policy and Procedures", "Develop, document, and disseminate identification and authentication policy and procedures."),
		{ID: "IA-2", Title: "Identification and Authentication (Organizational Users)", Statement: "Uniquely identify and authenticate organizational users and associate that identification with processes acting on their behalf.", Related: []string{"AC-2"}},
		ctl("IA-2(1)", "Multi-factor Authentication to Privileged Accounts", "Implement multi-factor authentication for access to privileged accounts."),
		ctl("IA-5", "Authenticator Management", "Manage system authenticators by verifying identity before distribution and protecting against unauthorized disclosure."),

		// Incident Response
		ctl("IR-1", "Policy and Procedures", "Develop, document, and disseminate incident response policy and procedures."),
		{ID: "IR-4", Title: "Incident Handling", Statement: "Implement an incident handling capability including preparation, detection, analysis, containment, eradication, and recovery.", Related: []string{"IR-6"}},
		ctl("IR-6", "Incident Reporting", "Require personnel to report suspected incidents to the incident response capability within a defined period."),

		// Risk Assessment
		ctl("RA-1", "Policy and Procedures", "Develop, document, and disseminate risk assessment policy and procedures."),
		ctl("RA-5", "Vulnerability Monitoring and Scanning", "Monitor and scan for vulnerabilities in the system and hosted applications using CVE, CWE, and NVD sources."),

		// System and Communications Protection
		ctl("SC-1", "Policy and Procedures", "Develop, document, and disseminate system and communications protection policy and procedures."),
		ctl("SC-7", "Boundary Protection", "Monitor and control communications at the external managed interfaces and key internal managed interfaces."),

		// System and Information Integrity
		ctl("SI-1", "Policy and Procedures", "Develop, document, and disseminate system and information integrity policy and procedures."),
		ctl("SI-2", "Flaw Remediation", "Identify, report, and correct system flaws and install security-relevant updates within a defined period."),
		ctl("SI-3", "Malicious Code Protection", "Implement malicious code protection at system entry and exit points to detect and eradicate malicious code."),
		{ID: "SI-4", Title: "System Monitoring", Statement: "Monitor the system to detect attacks, indicators of potential attacks, and unauthorized connections.", Related: []string{"AU-6"}},
		ctl("SI-10", "Information Input Validation", "Check the validity of information inputs to verify they match specified definitions for format and content."),
	}
}

func sampleBaselines() map[string][]string {
	low := []string{
		"AC-1", "AC-2", "AC-3", "AC-7", "AC-8",
		"AU-1", "AU-2", "AU-3",
		"CA-1", "CA-7",
		"CM-1", "CM-2", "CM-6",
		"IA-1", "IA-2", "IA-5",
		"IR-1", "IR-4", "IR-6",
		"RA-1", "RA-5",
		"SC-1", "SC-7",
		"SI-1", "SI-2", "SI-3", "SI-4",
	}
	moderate := append(append([]string{}, low...),
		"AC-2(1)", "AC-5", "AC-6", "AC-11", "AC-12", "AC-17", "AC-18", "AC-19", "AC-20",
		"AU-4", "AU-5", "AU-6", "AU-9", "AU-11", "AU-12",
		"CM-3", "CM-5", "CM-8",
		"CP-9", "CP-10",
		"IA-2(1)",
		"SI-10",
	)
	high := append(append([]string{}, moderate...),
		"AC-2(2)", "AC-6(1)",
	)
	return map[string][]string{"low": low, "moderate": moderate, "high": high}
}

func sampleCSF() []catalog.CSFFunction {
	return []catalog.CSFFunction{
		{
			ID: "GV", Name: "Govern",
			Categories: []catalog.CSFCategory{
				{ID: "GV.PO", Name: "Policy", Subcategories: []catalog.CSFSubcategory{
					{ID: "GV.PO-01", Description: "Policy for managing cybersecurity risks is established, communicated, and enforced."},
				}},
			},
		},
		{
			ID: "ID", Name: "Identify",
			Categories: []catalog.CSFCategory{
				{ID: "ID.AM", Name: "Asset Management", Subcategories: []catalog.CSFSubcategory{
					{ID: "ID.AM-01", Description: "Inventories of hardware managed by the organization are maintained."},
				}},
				{ID: "ID.RA", Name: "Risk Assessment", Subcategories: []catalog.CSFSubcategory{
					{ID: "ID.RA-01", Description: "Vulnerabilities in assets are identified, validated, and recorded."},
				}},
			},
		},
		{
			ID: "PR", Name: "Protect",
			Categories: []catalog.CSFCategory{
				{ID: "PR.AA", Name: "Identity Management, Authentication, and Access Control", Subcategories: []catalog.CSFSubcategory{
					{ID: "PR.AA-01", Description: "Identities and credentials for authorized users, services, and hardware are managed by the organization."},
					{ID: "PR.AA-05", Description: "Access permissions, entitlements, and authorizations incorporate the principles of least privilege and separation of duties."},
				}},
				{ID: "PR.PS", Name: "Platform Security", Subcategories: []catalog.CSFSubcategory{
					{ID: "PR.PS-01", Description: "Configuration management practices are established and applied."},
				}},
			},
		},
		{
			ID: "DE", Name: "Detect",
			Categories: []catalog.CSFCategory{
				{ID: "DE.CM", Name: "Continuous Monitoring", Subcategories: []catalog.CSFSubcategory{
					{ID: "DE.CM-01", Description: "Networks and network services are monitored to find potentially adverse events."},
				}},
				{ID: "DE.AE", Name: "Adverse Event Analysis", Subcategories: []catalog.CSFSubcategory{
					{ID: "DE.AE-02", Description: "Potentially adverse events are analyzed to better understand associated activities."},
				}},
			},
		},
		{
			ID: "RS", Name: "Respond",
			Categories: []catalog.CSFCategory{
				{ID: "RS.MA", Name: "Incident Management", Subcategories: []catalog.CSFSubcategory{
					{ID: "RS.MA-01", Description: "The incident response plan is executed in coordination with relevant third parties once an incident is declared."},
				}},
			},
		},
		{
			ID: "RC", Name: "Recover",
			Categories: []catalog.CSFCategory{
				{ID: "RC.RP", Name: "Incident Recovery Plan Execution", Subcategories: []catalog.CSFSubcategory{
					{ID: "RC.RP-01", Description: "The recovery portion of the incident response plan is executed once initiated from the incident response process."},
				}},
			},
		},
	}
}

func sampleCSFMappings() []catalog.CSFMapping {
	return []catalog.CSFMapping{
		{ControlID: "AC-1", SubcategoryID: "GV.PO-01", Rationale: "Access control policy is part of the governance policy set"},
		{ControlID: "AC-2", SubcategoryID: "PR.AA-01", Rationale: "Account management maintains identities and credentials"},
		{ControlID: "IA-2", SubcategoryID: "PR.AA-01"},
		{ControlID: "IA-5", SubcategoryID: "PR.AA-01"},
		{ControlID: "AC-3", SubcategoryID: "PR.AA-05"},
		{ControlID: "AC-6", SubcategoryID: "PR.AA-05", Rationale: "Least privilege drives access authorizations"},
		{ControlID: "CM-2", SubcategoryID: "PR.PS-01"},
		{ControlID: "CM-6", SubcategoryID: "PR.PS-01"},
		{ControlID: "SI-4", SubcategoryID: "DE.CM-01"},
		{ControlID: "SC-7", SubcategoryID: "DE.CM-01"},
		{ControlID: "AU-6", SubcategoryID: "DE.AE-02"},
		{ControlID: "IR-4", SubcategoryID: "RS.MA-01"},
		{ControlID: "IR-6", SubcategoryID: "RS.MA-01"},
		{ControlID: "CP-10", SubcategoryID: "RC.RP-01"},
		{ControlID: "CM-8", SubcategoryID: "ID.AM-01"},
		{ControlID: "RA-5", SubcategoryID: "ID.RA-01"},
	}
}

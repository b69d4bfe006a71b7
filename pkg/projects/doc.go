// Package projects defines the project records read from the AIMS database,
// the ordered project lifecycle statuses, and the rule that turns a record
// into the name of its directory on the NAS.
//
// The directory name is a pure function of the phase number and project name:
//
//	projects.Normalize("2024-01", "Site A")     // "2024_01_Site_A"
//	projects.Normalize("2024-01", "Site--A  B") // "2024_01_Site_A_B"
package projects

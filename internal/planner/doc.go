// Package planner computes and applies component install plans. Planning
// resolves the dependency closure of the requested slugs, fetches file
// payloads, classifies each destination against the workspace, and collects
// the export and dependency requirements. Conflict resolution then decides
// which modified files may be overwritten, and the apply step performs the
// writes, merges the barrel, and reconciles package dependencies.
//
// Planning never writes to the file system; all mutation happens in Apply.
package planner

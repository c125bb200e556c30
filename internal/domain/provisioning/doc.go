// Package provisioning models the environment bootstrap: an ordered plan of
// shell commands that installs the sqlite3 engine and the Python packages of
// the companion notebook. Steps run one after the other and the first failure
// stops the plan.
package provisioning

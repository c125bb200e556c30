// Package provisioner executes provisioning steps on the host.
package provisioner

package v1

// Version is the REST API version served under BasePath
const Version = "v1"

// BasePath prefixes every v1 route
const BasePath = "/api/" + Version + "/sitebill"

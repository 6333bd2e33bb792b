package pwa

// Version is the module version reported in the entry point manifest.
const Version = "0.4.0"

// ModuleName is the package name page scripts know the module by.
const ModuleName = "@remix-pwa/client"

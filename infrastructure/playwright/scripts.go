//go:build !js

package playwright

// Page scripts evaluated by the host. Expressions without a parameter are
// evaluated as-is; functions receive the single argument passed along.
const (
	exprHasWindow      = `typeof window !== "undefined"`
	exprHasDocument    = `typeof document !== "undefined"`
	exprHasClipboard   = `!!(navigator.clipboard && navigator.clipboard.writeText)`
	exprOnLine         = `navigator.onLine`
	exprHasGeolocation = `!!navigator.geolocation`
	exprLanguage       = `navigator.language || null`
	exprLanguages      = `Array.from(navigator.languages || [])`
	exprHasPermissions = `!!navigator.permissions`
	exprHasElement     = `!!document.documentElement`
	exprFullscreen     = `!!document.fullscreenElement`
	exprVisibility     = `document.visibilityState`

	fnWriteText = `async (text) => { await navigator.clipboard.writeText(text); }`
	fnReadText  = `() => navigator.clipboard.readText()`

	fnExitFullscreen    = `() => document.exitFullscreen()`
	fnRequestFullscreen = `() => document.documentElement.requestFullscreen()`

	exprConnection = `(() => {
	const c = navigator.connection;
	if (!c) return null;
	return {
		type: c.type || "unknown",
		effectiveType: c.effectiveType || "",
		downlink: c.downlink || 0,
		downlinkMax: Number.isFinite(c.downlinkMax) ? c.downlinkMax : 0,
		rtt: c.rtt || 0,
		saveData: !!c.saveData,
	};
})()`

	fnQueryPermission = `async (name) => {
	let status;
	try {
		status = await navigator.permissions.query({ name });
	} catch (e) {
		return { error: String((e && e.message) || e) };
	}
	return { name: status.name || name, state: status.state };
}`

	fnCurrentPosition = `(options) => new Promise((resolve) => {
	navigator.geolocation.getCurrentPosition(
		(p) => resolve({
			ok: true,
			timestamp: p.timestamp,
			coords: {
				latitude: p.coords.latitude,
				longitude: p.coords.longitude,
				accuracy: p.coords.accuracy,
				altitude: p.coords.altitude,
				altitudeAccuracy: p.coords.altitudeAccuracy,
				heading: p.coords.heading,
				speed: p.coords.speed,
			},
		}),
		(e) => resolve({ ok: false, code: e.code, message: e.message }),
		options || undefined,
	);
})`
)

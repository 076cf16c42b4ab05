// Package events defines the application event catalog for cinder.
// These events enable communication between screens, workers, and other
// components without requiring direct dependencies: the device list,
// image picker, and flasher never call each other — they broadcast.
//
// Every definition here must be listed in Names so the catalog test can
// prove the full set is collision-free.
package events

import (
	"time"

	"github.com/cinder-flash/cinder/internal/event"
)

// -----------------------------------------------------------------------------
// Device Events
// -----------------------------------------------------------------------------

// Device describes one flashable device as discovered by the platform
// enumeration worker.
type Device struct {
	Path      string // e.g. "/dev/disk4"
	Name      string // human-readable model name
	SizeBytes int64
	Removable bool
	System    bool // true for devices that look like the OS disk
}

// DeviceDiscoverRequestedData asks the device list to begin a discovery
// round.
type DeviceDiscoverRequestedData struct{}

// DeviceDiscoverStartedData announces that a discovery round is in flight.
type DeviceDiscoverStartedData struct {
	Round int
}

// DeviceDiscoverFinishedData carries the result of a discovery round.
// A failed enumeration publishes an empty Devices list with Err set.
type DeviceDiscoverFinishedData struct {
	Devices []Device
	Err     string
}

// DeviceSelectedData announces the user's device choice.
type DeviceSelectedData struct {
	Device Device
}

// DeviceAttachedData announces a hot-plugged device.
type DeviceAttachedData struct {
	Device Device
}

// DeviceDetachedData announces a removed device.
type DeviceDetachedData struct {
	Path string
}

// DeviceEjectRequestedData asks for a device to be ejected.
type DeviceEjectRequestedData struct {
	Path string
}

// DeviceEjectFinishedData reports the outcome of an eject.
type DeviceEjectFinishedData struct {
	Path string
	Err  string
}

// DeviceQueryRequest asks whichever screen owns the device selection for
// the current choice.
type DeviceQueryRequest struct{}

// DeviceQueryResponse is the answer to DeviceQuerySelected.
type DeviceQueryResponse struct {
	Device   Device
	Selected bool
}

var (
	// DeviceDiscoverRequested asks for a new discovery round.
	DeviceDiscoverRequested = event.Define[DeviceDiscoverRequestedData]("device.discover_requested")
	// DeviceDiscoverStarted announces an in-flight discovery round.
	DeviceDiscoverStarted = event.Define[DeviceDiscoverStartedData]("device.discover_started")
	// DeviceDiscoverFinished carries a discovery round's result. Published
	// from the discovery worker with self-delivery enabled, because the
	// device list itself is the primary recipient.
	DeviceDiscoverFinished = event.Define[DeviceDiscoverFinishedData]("device.discover_finished")
	// DeviceSelected announces the chosen target device.
	DeviceSelected = event.Define[DeviceSelectedData]("device.selected")
	// DeviceAttached announces a hot-plugged device.
	DeviceAttached = event.Define[DeviceAttachedData]("device.attached")
	// DeviceDetached announces a removed device.
	DeviceDetached = event.Define[DeviceDetachedData]("device.detached")
	// DeviceEjectRequested asks for an eject.
	DeviceEjectRequested = event.Define[DeviceEjectRequestedData]("device.eject_requested")
	// DeviceEjectFinished reports an eject outcome.
	DeviceEjectFinished = event.Define[DeviceEjectFinishedData]("device.eject_finished")
	// DeviceQuerySelected is the synchronous query for the current device
	// choice; exactly one screen answers it.
	DeviceQuerySelected = event.DefineQuery[DeviceQueryRequest, DeviceQueryResponse]("device.query_selected")
)

// -----------------------------------------------------------------------------
// Image Events
// -----------------------------------------------------------------------------

// ImagePickRequestedData asks the image picker to open.
type ImagePickRequestedData struct{}

// ImagePickedData announces the chosen source image.
type ImagePickedData struct {
	Path      string
	SizeBytes int64
}

// ImageValidateStartedData announces an in-flight image validation.
type ImageValidateStartedData struct {
	Path string
}

// ImageValidateFinishedData reports an image validation outcome.
type ImageValidateFinishedData struct {
	Path  string
	Valid bool
	Err   string
}

// ImageClearedData announces that the image selection was reset.
type ImageClearedData struct{}

// ImageQueryRequest asks for the current image choice.
type ImageQueryRequest struct{}

// ImageQueryResponse is the answer to ImageQuerySelected.
type ImageQueryResponse struct {
	Path      string
	SizeBytes int64
	Selected  bool
}

var (
	// ImagePickRequested asks the image picker to open.
	ImagePickRequested = event.Define[ImagePickRequestedData]("image.pick_requested")
	// ImagePicked announces the chosen source image.
	ImagePicked = event.Define[ImagePickedData]("image.picked")
	// ImageValidateStarted announces an in-flight validation.
	ImageValidateStarted = event.Define[ImageValidateStartedData]("image.validate_started")
	// ImageValidateFinished reports a validation outcome.
	ImageValidateFinished = event.Define[ImageValidateFinishedData]("image.validate_finished")
	// ImageCleared announces a reset image selection.
	ImageCleared = event.Define[ImageClearedData]("image.cleared")
	// ImageQuerySelected is the synchronous query for the current image
	// choice; exactly one screen answers it.
	ImageQuerySelected = event.DefineQuery[ImageQueryRequest, ImageQueryResponse]("image.query_selected")
)

// -----------------------------------------------------------------------------
// Flash Events
// -----------------------------------------------------------------------------

// FlashRequestedData asks the flasher to begin writing.
type FlashRequestedData struct {
	ImagePath  string
	DevicePath string
	Verify     bool
}

// FlashStartedData announces that a write has begun.
type FlashStartedData struct {
	ImagePath  string
	DevicePath string
	TotalBytes int64
}

// FlashProgressData carries write progress. Published from the flash
// worker once per buffer.
type FlashProgressData struct {
	WrittenBytes int64
	TotalBytes   int64
	BytesPerSec  int64
}

// FlashVerifyStartedData announces the start of the verification pass.
type FlashVerifyStartedData struct {
	DevicePath string
}

// FlashVerifyProgressData carries verification progress.
type FlashVerifyProgressData struct {
	ReadBytes  int64
	TotalBytes int64
}

// FlashFinishedData reports a completed flash.
type FlashFinishedData struct {
	DevicePath string
	Duration   time.Duration
	Verified   bool
}

// FlashFailedData reports a failed flash.
type FlashFailedData struct {
	DevicePath string
	Err        string
}

// FlashCancelRequestedData asks the in-flight flash to stop.
type FlashCancelRequestedData struct{}

// FlashQueryRequest asks the flasher for its current status.
type FlashQueryRequest struct{}

// FlashQueryResponse is the answer to FlashQueryStatus.
type FlashQueryResponse struct {
	Active       bool
	WrittenBytes int64
	TotalBytes   int64
}

var (
	// FlashRequested asks the flasher to begin writing.
	FlashRequested = event.Define[FlashRequestedData]("flash.requested")
	// FlashStarted announces that a write has begun.
	FlashStarted = event.Define[FlashStartedData]("flash.started")
	// FlashProgress carries write progress.
	FlashProgress = event.Define[FlashProgressData]("flash.progress")
	// FlashVerifyStarted announces the verification pass.
	FlashVerifyStarted = event.Define[FlashVerifyStartedData]("flash.verify_started")
	// FlashVerifyProgress carries verification progress.
	FlashVerifyProgress = event.Define[FlashVerifyProgressData]("flash.verify_progress")
	// FlashFinished reports a completed flash.
	FlashFinished = event.Define[FlashFinishedData]("flash.finished")
	// FlashFailed reports a failed flash.
	FlashFailed = event.Define[FlashFailedData]("flash.failed")
	// FlashCancelRequested asks the in-flight flash to stop.
	FlashCancelRequested = event.Define[FlashCancelRequestedData]("flash.cancel_requested")
	// FlashQueryStatus is the synchronous query for flash progress;
	// exactly one component answers it.
	FlashQueryStatus = event.DefineQuery[FlashQueryRequest, FlashQueryResponse]("flash.query_status")
)

// -----------------------------------------------------------------------------
// Update Events
// -----------------------------------------------------------------------------

// UpdateCheckStartedData announces an in-flight update check.
type UpdateCheckStartedData struct{}

// UpdateCheckFinishedData reports the update check outcome.
type UpdateCheckFinishedData struct {
	Latest string
	Err    string
}

// UpdateAvailableData announces that a newer release exists.
type UpdateAvailableData struct {
	Version string
	URL     string
}

var (
	// UpdateCheckStarted announces an in-flight update check.
	UpdateCheckStarted = event.Define[UpdateCheckStartedData]("update.check_started")
	// UpdateCheckFinished reports the update check outcome.
	UpdateCheckFinished = event.Define[UpdateCheckFinishedData]("update.check_finished")
	// UpdateAvailable announces that a newer release exists.
	UpdateAvailable = event.Define[UpdateAvailableData]("update.available")
)

// -----------------------------------------------------------------------------
// UI Events
// -----------------------------------------------------------------------------

// ScreenChangedData announces a screen transition.
type ScreenChangedData struct {
	From string
	To   string
}

// RefreshRequestedData asks every screen to redraw from current state.
type RefreshRequestedData struct{}

// AlertRaisedData carries a user-facing alert.
type AlertRaisedData struct {
	Title   string
	Message string
	Fatal   bool
}

// AlertDismissedData announces that the active alert was dismissed.
type AlertDismissedData struct{}

// ActiveScreenRequest asks for the currently active screen.
type ActiveScreenRequest struct{}

// ActiveScreenResponse is the answer to UIQueryActiveScreen.
type ActiveScreenResponse struct {
	Screen string
}

var (
	// UIScreenChanged announces a screen transition.
	UIScreenChanged = event.Define[ScreenChangedData]("ui.screen_changed")
	// UIRefreshRequested asks every screen to redraw.
	UIRefreshRequested = event.Define[RefreshRequestedData]("ui.refresh_requested")
	// UIAlertRaised carries a user-facing alert.
	UIAlertRaised = event.Define[AlertRaisedData]("ui.alert_raised")
	// UIAlertDismissed announces a dismissed alert.
	UIAlertDismissed = event.Define[AlertDismissedData]("ui.alert_dismissed")
	// UIQueryActiveScreen is the synchronous query for the active screen.
	UIQueryActiveScreen = event.DefineQuery[ActiveScreenRequest, ActiveScreenResponse]("ui.query_active_screen")
)

// -----------------------------------------------------------------------------
// Config and Application Events
// -----------------------------------------------------------------------------

// ConfigReloadedData announces that the on-disk configuration changed and
// was reloaded. Published from the config watcher's worker.
type ConfigReloadedData struct {
	Path string
}

// ConfigWatchFailedData reports a broken config watch.
type ConfigWatchFailedData struct {
	Err string
}

// AppStartedData announces that startup completed.
type AppStartedData struct {
	Version string
}

// AppShutdownRequestedData asks the application to exit cleanly.
type AppShutdownRequestedData struct{}

var (
	// ConfigReloaded announces a reloaded configuration file.
	ConfigReloaded = event.Define[ConfigReloadedData]("config.reloaded")
	// ConfigWatchFailed reports a broken config watch.
	ConfigWatchFailed = event.Define[ConfigWatchFailedData]("config.watch_failed")
	// AppStarted announces completed startup.
	AppStarted = event.Define[AppStartedData]("app.started")
	// AppShutdownRequested asks the application to exit cleanly.
	AppShutdownRequested = event.Define[AppShutdownRequestedData]("app.shutdown_requested")
)

// Names lists every event name in the application catalog. The catalog
// test registers all of them into one event.Catalog to prove the set is
// collision-free; Catalog below does the same for runtime tooling.
func Names() []string {
	return []string{
		DeviceDiscoverRequested.Name(),
		DeviceDiscoverStarted.Name(),
		DeviceDiscoverFinished.Name(),
		DeviceSelected.Name(),
		DeviceAttached.Name(),
		DeviceDetached.Name(),
		DeviceEjectRequested.Name(),
		DeviceEjectFinished.Name(),
		DeviceQuerySelected.Name(),
		ImagePickRequested.Name(),
		ImagePicked.Name(),
		ImageValidateStarted.Name(),
		ImageValidateFinished.Name(),
		ImageCleared.Name(),
		ImageQuerySelected.Name(),
		FlashRequested.Name(),
		FlashStarted.Name(),
		FlashProgress.Name(),
		FlashVerifyStarted.Name(),
		FlashVerifyProgress.Name(),
		FlashFinished.Name(),
		FlashFailed.Name(),
		FlashCancelRequested.Name(),
		FlashQueryStatus.Name(),
		UpdateCheckStarted.Name(),
		UpdateCheckFinished.Name(),
		UpdateAvailable.Name(),
		UIScreenChanged.Name(),
		UIRefreshRequested.Name(),
		UIAlertRaised.Name(),
		UIAlertDismissed.Name(),
		UIQueryActiveScreen.Name(),
		ConfigReloaded.Name(),
		ConfigWatchFailed.Name(),
		AppStarted.Name(),
		AppShutdownRequested.Name(),
	}
}

// Catalog builds an event.Catalog holding the full application event set.
// It fails only if the catalog itself is broken — a duplicate name or a
// hash collision — which the test suite treats as a build error.
func Catalog() (*event.Catalog, error) {
	c := event.NewCatalog()
	for _, name := range Names() {
		if err := c.Register(name); err != nil {
			return nil, err
		}
	}
	return c, nil
}

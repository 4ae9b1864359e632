// Package vesync provides a Go client library for the VeSync cloud API,
// controlling Etekcity, Levoit and Cosori smart home devices: outlets, wall
// switches, bulbs, humidifiers, air purifiers, tower fans and air fryers.
//
// # Authentication
//
// Create a client with account credentials and log in. The session token is
// cached in a credential file (~/.vesync_auth) and reused across runs:
//
//	client, err := vesync.NewClient("user@example.com", "password")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := client.Login(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Accounts registered outside the US, Canada, Mexico and Japan are routed
// to the EU endpoint automatically, including the cross-region redirect the
// API performs during login.
//
// # Devices
//
// Fetch the device list and work with typed devices:
//
//	if err := client.Update(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	for _, outlet := range client.Devices().Outlets() {
//	    fmt.Printf("%s: %s\n", outlet.DeviceName(), outlet.DeviceStatus())
//	}
//
// Device commands report failures two ways. Systemic problems, such as rate
// limiting, an expired token or a server fault, come back as typed errors:
//
//	ok, err := humidifier.TurnOn(ctx)
//	if vesync.IsTokenError(err) {
//	    err = client.Reauthenticate(ctx)
//	}
//
// Device-level problems, such as the device being offline, return ok false
// with a nil error; the classified response is kept on the device:
//
//	if !ok {
//	    info := humidifier.LastResponse()
//	    fmt.Printf("%s: %s\n", info.Name, info.Message)
//	}
//
// # Logging
//
// The client is silent by default. Pass a zerolog logger to see structured
// request, response and device activity:
//
//	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	client, err := vesync.NewClient(user, pass, vesync.WithLogger(logger))
package vesync

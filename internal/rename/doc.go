// Package rename runs a template rename over the selected layers of a host.
//
// # Driver
//
// The Driver coordinates one batch:
//
//  1. Read the document and build the batch context (date read once)
//  2. Snapshot the selected layers in display order
//  3. Resolve the template for each layer and rename it, re-applying its visibility
//  4. Reselect the original layers
//  5. Commit, for hosts that buffer changes
//
// # Basic Usage
//
//	driver := rename.NewDriver(h, rename.WithProgress(func(event rename.ProgressEvent) {
//	    fmt.Println(event.Message)
//	}))
//
//	result, err := driver.Run(ctx, "{layer:name}_{nn:1}")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, f := range result.Failed {
//	    fmt.Println(f)
//	}
//
// # Failures
//
// A layer the host refuses to rename does not stop the batch. It is listed
// in Result.Failed with the name that was attempted.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent,
// and can be polled with Driver.Progress. Progress reporting never changes
// the outcome of a batch.
package rename

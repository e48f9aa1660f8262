// Package registry holds the in-memory roster of extracurricular activities.
//
// A Registry is created once from a seed and its set of activities never
// changes afterwards. Students are added with Enroll and removed with
// Withdraw; List and Get return copies so callers can never mutate the
// roster behind the registry's back.
//
// Example usage:
//
//	reg, err := registry.New(registry.DefaultSeed())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	conf, err := reg.Enroll("Chess Club", "ada@mergington.edu")
//	if errors.Is(err, registry.ErrFull) {
//	    // tell the student to try another club
//	}
//	fmt.Println(conf.Message)
package registry

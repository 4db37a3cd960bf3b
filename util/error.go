package util

//CheckErrNop logs err with msg and reports whether err was non-nil.
//The run continues either way.
func CheckErrNop(err error, msg string) (e bool) {
	e = err != nil
	if e {
		log.Printf("%s, [%+v]", msg, err)
	}
	return
}

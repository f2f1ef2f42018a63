// Package objstore persists one value in one file.
//
// It is the single object counterpart of pstore: no keys, no ordering, just
// the latest saved value. The file content is text (base64 of the codec
// output), so it can be copied around or pasted into configuration.
//
//	s, err := objstore.New[Settings]("state/settings.obj", codec.NewGOBCodec())
//	if err != nil {
//		return err
//	}
//	cfg := s.Obj()
//	cfg.Runs++
//	return s.Save(cfg)
package objstore

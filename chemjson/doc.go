package chemjson

//Package chemjson implements serializacion and unserialization of
//goCell unit cells. It's planned use is the communication of goCell
//programs with other, independent programs which can be written in
//languages other than Go, as long as those languages implement a
//way of serializing and unserializing JSON data, for instance,
//via UNIX pipes. Each cell is written as one JSON object per line.
